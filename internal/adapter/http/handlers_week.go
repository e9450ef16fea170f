package adapthttp

import (
	"net/http"
	"time"
)

func (s *Server) handleChartsWeekly(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r)
	anchor := dayQuery(r, "anchor")

	week, err := s.weekly.LoadWeek(r.Context(), user.ID, anchor)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"anchor":  anchor,
		"today":   localDayString(time.Now()),
		"days":    week.Days,
		"hasData": week.HasData,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r)
	limit := intQuery(r, "limit", 7)

	items, err := s.weekly.History(r.Context(), user.ID, limit)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
