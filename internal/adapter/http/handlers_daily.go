package adapthttp

import (
	"net/http"
	"time"

	"healthtrack/internal/domain"
)

// Daily goals mirrored by the dashboard progress bars.
const (
	goalWaterGlasses = 8
	goalSleepHours   = 8
	goalSteps        = 10000
)

func progressFor(rec domain.DailyRecord) map[string]float64 {
	return map[string]float64{
		"water": float64(rec.Water) / goalWaterGlasses,
		"sleep": float64(rec.Sleep) / goalSleepHours,
		"steps": float64(rec.Steps) / goalSteps,
	}
}

func (s *Server) handleDailyToday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r)
	today := localDayString(time.Now())

	rec, err := s.daily.LoadToday(r.Context(), user.ID, today)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"record":   rec,
		"hasData":  rec.HasData(),
		"progress": progressFor(rec),
	})
}

func (s *Server) handleDailyAdjust(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Field string `json:"field"`
		Delta int    `json:"delta"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	user := userFromContext(r)
	today := localDayString(time.Now())

	rec, err := s.daily.Adjust(r.Context(), user.ID, today, body.Field, body.Delta)
	if err != nil {
		if isStoreErr(err) {
			writeStoreError(w, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"record":   rec,
		"progress": progressFor(rec),
	})
}

func (s *Server) handleDailySet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Water string `json:"water"`
		Sleep string `json:"sleep"`
		Steps string `json:"steps"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	user := userFromContext(r)
	today := localDayString(time.Now())

	rec, err := s.daily.SetAll(r.Context(), user.ID, today, body.Water, body.Sleep, body.Steps)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"record":   rec,
		"progress": progressFor(rec),
	})
}
