// Package memory implements an in-memory store for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"healthtrack/internal/domain"
)

// DB implements the domain ports over in-process maps.
type DB struct {
	mu       sync.Mutex
	records  map[int64]map[string]domain.DailyRecord
	users    []*domain.User
	sessions map[string]*domain.Session

	userIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		records:  make(map[int64]map[string]domain.DailyRecord),
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.RecordStore = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- RecordStore ---

// GetDay returns the record for one (user, day) key, or nil when absent.
func (db *DB) GetDay(ctx context.Context, userID int64, day string) (*domain.DailyRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rec, ok := db.records[userID][day]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// MergeDay upserts a record, applying only the fields set in the patch.
func (db *DB) MergeDay(ctx context.Context, userID int64, day string, patch domain.RecordPatch) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	days, ok := db.records[userID]
	if !ok {
		days = make(map[string]domain.DailyRecord)
		db.records[userID] = days
	}

	rec, ok := days[day]
	if !ok {
		rec = domain.DailyRecord{UserID: userID, Day: day}
	}
	if patch.Water != nil {
		rec.Water = *patch.Water
	}
	if patch.Sleep != nil {
		rec.Sleep = *patch.Sleep
	}
	if patch.Steps != nil {
		rec.Steps = *patch.Steps
	}
	days[day] = rec
	return nil
}

// ListDays returns every stored day for a user, day ascending.
func (db *DB) ListDays(ctx context.Context, userID int64) ([]domain.DailyRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	days := db.records[userID]
	out := make([]domain.DailyRecord, 0, len(days))
	for _, rec := range days {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	db.users = append(db.users, u)
	cp := *u
	return &cp, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo exposes the session operations of DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.sessions[token]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// Delete removes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired removes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	now := time.Now()
	for token, s := range r.db.sessions {
		if now.After(s.ExpiresAt) {
			delete(r.db.sessions, token)
		}
	}
	return nil
}
