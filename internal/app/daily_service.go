package app

import (
	"context"
	"fmt"

	"healthtrack/internal/domain"
)

// Metric names accepted by DailyService.Adjust.
const (
	FieldWater = "water"
	FieldSleep = "sleep"
	FieldSteps = "steps"
)

// DailyService encapsulates the use cases around today's daily record.
type DailyService struct {
	store domain.RecordStore
}

// NewDailyService creates a DailyService backed by the given record store.
func NewDailyService(store domain.RecordStore) *DailyService {
	return &DailyService{store: store}
}

// LoadToday returns the record for the given local day, or the zero record
// if none is stored yet. A missing record is not an error and triggers no
// write.
func (s *DailyService) LoadToday(ctx context.Context, userID int64, day string) (domain.DailyRecord, error) {
	rec, err := s.store.GetDay(ctx, userID, day)
	if err != nil {
		return domain.DailyRecord{}, err
	}
	if rec == nil {
		return domain.DailyRecord{UserID: userID, Day: day}, nil
	}
	return *rec, nil
}

// Adjust applies a signed delta to one field of the day's record, clamping
// the result at zero, and persists the full record in a single merge write.
// The other two fields keep their current stored values.
func (s *DailyService) Adjust(ctx context.Context, userID int64, day, field string, delta int) (domain.DailyRecord, error) {
	if field != FieldWater && field != FieldSleep && field != FieldSteps {
		return domain.DailyRecord{}, fmt.Errorf("unknown field %q", field)
	}

	rec, err := s.LoadToday(ctx, userID, day)
	if err != nil {
		return domain.DailyRecord{}, err
	}

	switch field {
	case FieldWater:
		rec.Water = domain.ClampNonNegative(rec.Water + delta)
	case FieldSleep:
		rec.Sleep = domain.ClampNonNegative(rec.Sleep + delta)
	case FieldSteps:
		rec.Steps = domain.ClampNonNegative(rec.Steps + delta)
	}

	patch := domain.RecordPatch{Water: &rec.Water, Sleep: &rec.Sleep, Steps: &rec.Steps}
	if err := s.store.MergeDay(ctx, userID, day, patch); err != nil {
		return domain.DailyRecord{}, err
	}
	return rec, nil
}

// SetAll replaces all three counters from free-form inputs. Empty or
// non-numeric input coerces to 0 and negatives clamp to 0; the result is
// persisted in a single merge write.
func (s *DailyService) SetAll(ctx context.Context, userID int64, day, water, sleep, steps string) (domain.DailyRecord, error) {
	rec := domain.DailyRecord{
		UserID: userID,
		Day:    day,
		Water:  domain.CoerceCount(water),
		Sleep:  domain.CoerceCount(sleep),
		Steps:  domain.CoerceCount(steps),
	}

	patch := domain.RecordPatch{Water: &rec.Water, Sleep: &rec.Sleep, Steps: &rec.Steps}
	if err := s.store.MergeDay(ctx, userID, day, patch); err != nil {
		return domain.DailyRecord{}, err
	}
	return rec, nil
}
