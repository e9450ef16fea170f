// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting for the service.
type Config struct {
	// HTTP server
	Addr   string
	WebDir string

	// Record store
	DataBackend  string // "postgres" or "memory"
	DatabaseURL  string
	StoreTimeout time.Duration

	// OIDC SSO (optional)
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Logging
	LogLevel string
}

// Load reads configuration from the environment, after loading a local .env
// file when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:   getEnv("ADDR", ":8080"),
		WebDir: getEnv("WEB_DIR", "web"),

		DataBackend:  getEnv("DATA_BACKEND", "postgres"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		StoreTimeout: getEnvDuration("STORE_TIMEOUT", 5*time.Second),

		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration for inconsistencies before startup.
func (c *Config) Validate() error {
	switch c.DataBackend {
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case "memory":
	default:
		return fmt.Errorf("invalid DATA_BACKEND %q: must be \"postgres\" or \"memory\"", c.DataBackend)
	}

	if c.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive, got %s", c.StoreTimeout)
	}

	if c.OIDCIssuer != "" {
		if c.OIDCClientID == "" || c.OIDCRedirectURL == "" {
			return fmt.Errorf("OIDC_CLIENT_ID and OIDC_REDIRECT_URL are required when OIDC_ISSUER is set")
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
