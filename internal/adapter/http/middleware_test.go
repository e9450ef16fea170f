package adapthttp

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"healthtrack/internal/adapter/memory"
	"healthtrack/internal/app"
)

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	s := &Server{logger: slog.New(slog.NewTextHandler(&buf, nil))}

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("OK"))
	})
	handler := s.loggingMiddleware(nextHandler)

	req := httptest.NewRequest("GET", "/test-path", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Errorf("Expected status %d, got %d", http.StatusTeapot, w.Code)
	}

	logOutput := buf.String()
	if !strings.Contains(logOutput, "GET") || !strings.Contains(logOutput, "/test-path") || !strings.Contains(logOutput, "418") {
		t.Errorf("Log output missing expected fields. Got: %s", logOutput)
	}
}

func newAuthedServer(t *testing.T) (*Server, string) {
	t.Helper()
	db := memory.New()
	authSvc := app.NewAuthService(db, memory.NewSessionRepo(db))
	if err := authSvc.CreateInitialUser(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := authSvc.Login(context.Background(), "alice", "secret", "test-agent", "127.0.0.1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	s := New(
		app.NewDailyService(db),
		app.NewWeeklyService(db),
		authSvc,
		OIDCConfig{},
		t.TempDir(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return s, token
}

func TestAuthMiddleware_NoSession(t *testing.T) {
	s, _ := newAuthedServer(t)

	req := httptest.NewRequest("GET", "/api/daily/today", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", w.Code)
	}
}

func TestAuthMiddleware_ValidSession(t *testing.T) {
	s, token := newAuthedServer(t)

	req := httptest.NewRequest("GET", "/api/daily/today", nil)
	req.Header.Set("User-Agent", "test-agent")
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid session, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddleware_UserAgentMismatch(t *testing.T) {
	s, token := newAuthedServer(t)

	req := httptest.NewRequest("GET", "/api/daily/today", nil)
	req.Header.Set("User-Agent", "other-agent")
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on user-agent mismatch, got %d", w.Code)
	}
}

func TestAuthMiddleware_ForwardAuth(t *testing.T) {
	s, _ := newAuthedServer(t)

	req := httptest.NewRequest("GET", "/api/daily/today", nil)
	req.Header.Set("Remote-User", "alice")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with forward auth header, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginEndpoint_SetsSessionCookie(t *testing.T) {
	s, _ := newAuthedServer(t)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/auth/login",
		map[string]string{"username": "alice", "password": "secret"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			session = c
		}
	}
	if session == nil || session.Value == "" {
		t.Fatal("expected session cookie to be set")
	}
	if !session.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	s, _ := newAuthedServer(t)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/auth/login",
		map[string]string{"username": "alice", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestSSOEndpoints_DisabledWithoutIssuer(t *testing.T) {
	s, _ := newAuthedServer(t)
	h := s.Handler()

	for _, target := range []string{"/api/auth/sso/login", "/api/auth/sso/callback"} {
		req := httptest.NewRequest("GET", target, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404 when SSO disabled, got %d", target, w.Code)
		}
	}
}

func TestWithNoCache(t *testing.T) {
	handler := withNoCache(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("expected no-store, got %q", got)
	}
}
