// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"healthtrack/internal/domain"

	_ "github.com/lib/pq"
)

// DefaultOpTimeout bounds every store operation; an expired context surfaces
// as domain.ErrStoreUnavailable.
const DefaultOpTimeout = 5 * time.Second

// DB wraps a *sql.DB and implements the domain repository interfaces.
type DB struct {
	sql       *sql.DB
	opTimeout time.Duration
}

// Open connects to PostgreSQL, pings, and runs migrations. A non-positive
// opTimeout falls back to DefaultOpTimeout.
func Open(connStr string, opTimeout time.Duration) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	if opTimeout <= 0 {
		opTimeout = DefaultOpTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s, opTimeout: opTimeout}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d.opTimeout)
}

// storeErr wraps a driver failure as domain.ErrStoreUnavailable so callers
// can match the taxonomy without importing database/sql.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY, username TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, user_agent TEXT NOT NULL DEFAULT '', ip TEXT NOT NULL DEFAULT '', expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
		"CREATE TABLE IF NOT EXISTS daily_records (user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, day TEXT NOT NULL, water INT NOT NULL DEFAULT 0 CHECK(water >= 0), sleep INT NOT NULL DEFAULT 0 CHECK(sleep >= 0), steps INT NOT NULL DEFAULT 0 CHECK(steps >= 0), updated_at TIMESTAMPTZ NOT NULL, PRIMARY KEY(user_id, day));",
		"CREATE INDEX IF NOT EXISTS idx_daily_records_day ON daily_records(day);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
