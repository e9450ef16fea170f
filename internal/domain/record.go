// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
)

// ErrStoreUnavailable indicates that the record store could not be reached.
// Adapters wrap the underlying failure so callers can match with errors.Is.
var ErrStoreUnavailable = errors.New("record store unavailable")

// DailyRecord holds the three tracked counters for one user on one local
// calendar day. A day with no stored record reads as the zero record.
type DailyRecord struct {
	UserID int64  `json:"userId"`
	Day    string `json:"day"`
	Water  int    `json:"water"`
	Sleep  int    `json:"sleep"`
	Steps  int    `json:"steps"`
}

// HasData reports whether any counter is greater than zero.
func (r DailyRecord) HasData() bool {
	return r.Water > 0 || r.Sleep > 0 || r.Steps > 0
}

// RecordPatch is a partial update against a daily record. Nil fields are
// left untouched by a merge write.
type RecordPatch struct {
	Water *int
	Sleep *int
	Steps *int
}

// RecordStore is the port for daily record persistence. MergeDay must have
// upsert-merge semantics: a write to an absent (user, day) key creates the
// record, and fields absent from the patch are never erased.
type RecordStore interface {
	GetDay(ctx context.Context, userID int64, day string) (*DailyRecord, error)
	MergeDay(ctx context.Context, userID int64, day string, patch RecordPatch) error
	ListDays(ctx context.Context, userID int64) ([]DailyRecord, error)
}
