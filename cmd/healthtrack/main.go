package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	adapthttp "healthtrack/internal/adapter/http"
	"healthtrack/internal/adapter/memory"
	"healthtrack/internal/adapter/postgres"
	"healthtrack/internal/app"
	"healthtrack/internal/config"
	"healthtrack/internal/domain"
)

func main() {
	cfg := config.Load()
	logger := newLogger(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	store, users, sessions, cleanup, err := openBackend(cfg)
	if err != nil {
		logger.Error("store open", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	dailySvc := app.NewDailyService(store)
	weeklySvc := app.NewWeeklyService(store)
	authSvc := app.NewAuthService(users, sessions)

	oidcCfg, err := adapthttp.NewOIDCConfig(context.Background(),
		cfg.OIDCIssuer, cfg.OIDCClientID, cfg.OIDCClientSecret, cfg.OIDCRedirectURL)
	if err != nil {
		logger.Error("oidc discovery", "err", err)
		os.Exit(1)
	}

	h := adapthttp.New(dailySvc, weeklySvc, authSvc, oidcCfg, cfg.WebDir, logger).Handler()
	logger.Info("listening", "addr", cfg.Addr, "backend", cfg.DataBackend)
	if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server", "err", err)
		os.Exit(1)
	}
}

func openBackend(cfg *config.Config) (domain.RecordStore, domain.UserRepository, domain.SessionRepository, func(), error) {
	if cfg.DataBackend == "memory" {
		db := memory.New()
		return db, db, memory.NewSessionRepo(db), func() {}, nil
	}

	db, err := postgres.Open(cfg.DatabaseURL, cfg.StoreTimeout)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return db, db, postgres.NewSessionRepo(db), func() { _ = db.Close() }, nil
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
