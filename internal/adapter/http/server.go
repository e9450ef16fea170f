// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"log/slog"
	"net/http"

	"healthtrack/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	daily   *app.DailyService
	weekly  *app.WeeklyService
	authSvc *app.AuthService

	oidcConfig OIDCConfig
	webDir     string
	logger     *slog.Logger

	// disableAuth skips session checks; handler tests only.
	disableAuth bool
}

// New creates a Server wired to the given application services.
func New(ds *app.DailyService, ws *app.WeeklyService, as *app.AuthService, oc OIDCConfig, webDir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{daily: ds, weekly: ws, authSvc: as, oidcConfig: oc, webDir: webDir, logger: logger}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/setup", s.handleSetupUser)
	api.HandleFunc("/auth/config", s.handleConfig)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	tracked := http.NewServeMux()
	tracked.HandleFunc("/daily/today", s.handleDailyToday)
	tracked.HandleFunc("/daily/adjust", s.handleDailyAdjust)
	tracked.HandleFunc("/daily/set", s.handleDailySet)
	tracked.HandleFunc("/charts/weekly", s.handleChartsWeekly)
	tracked.HandleFunc("/history", s.handleHistory)
	api.Handle("/", s.authMiddleware(tracked))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
