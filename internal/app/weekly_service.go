package app

import (
	"context"
	"sort"
	"time"

	"healthtrack/internal/domain"
)

// windowDays is the fixed size of the rolling window shown on the charts
// and history screens.
const windowDays = 7

// WeeklyService reconstructs date-complete weekly views from the record
// store. It is read-only.
type WeeklyService struct {
	store domain.RecordStore
}

// NewWeeklyService creates a WeeklyService backed by the given record store.
func NewWeeklyService(store domain.RecordStore) *WeeklyService {
	return &WeeklyService{store: store}
}

// Week is a derived view of the 7 calendar days ending at the anchor day,
// oldest first. Days missing from the store are zero-filled so the slice
// always has exactly 7 entries.
type Week struct {
	Days    []domain.DailyRecord `json:"days"`
	HasData bool                 `json:"hasData"`
}

// LoadWeek fetches all stored days for the user in one read and assembles
// the 7-day window ending at anchorDay (inclusive).
func (s *WeeklyService) LoadWeek(ctx context.Context, userID int64, anchorDay string) (Week, error) {
	anchor, err := time.ParseInLocation("2006-01-02", anchorDay, time.Local)
	if err != nil {
		return Week{}, err
	}

	stored, err := s.store.ListDays(ctx, userID)
	if err != nil {
		return Week{}, err
	}
	byDay := make(map[string]domain.DailyRecord, len(stored))
	for _, rec := range stored {
		byDay[rec.Day] = rec
	}

	week := Week{Days: make([]domain.DailyRecord, 0, windowDays)}
	for i := windowDays - 1; i >= 0; i-- {
		day := anchor.AddDate(0, 0, -i).Format("2006-01-02")
		rec, ok := byDay[day]
		if !ok {
			rec = domain.DailyRecord{UserID: userID, Day: day}
		}
		if rec.HasData() {
			week.HasData = true
		}
		week.Days = append(week.Days, rec)
	}
	return week, nil
}

// History returns the most recent stored days up to limit, sorted ascending
// by day. The day strings are fixed-width YYYY-MM-DD, so lexicographic order
// is calendar order.
func (s *WeeklyService) History(ctx context.Context, userID int64, limit int) ([]domain.DailyRecord, error) {
	stored, err := s.store.ListDays(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(stored, func(i, j int) bool { return stored[i].Day < stored[j].Day })
	if limit > 0 && len(stored) > limit {
		stored = stored[len(stored)-limit:]
	}
	return stored, nil
}
