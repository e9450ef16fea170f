package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"healthtrack/internal/domain"
)

var _ domain.RecordStore = (*DB)(nil)

// GetDay returns the record for one (user, day) key, or nil when absent.
func (d *DB) GetDay(ctx context.Context, userID int64, day string) (*domain.DailyRecord, error) {
	ctx, cancel := d.opCtx(ctx)
	defer cancel()

	var rec domain.DailyRecord
	err := d.sql.QueryRowContext(ctx,
		"SELECT user_id, day, water, sleep, steps FROM daily_records WHERE user_id=$1 AND day=$2;",
		userID, day,
	).Scan(&rec.UserID, &rec.Day, &rec.Water, &rec.Sleep, &rec.Steps)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get day", err)
	}
	return &rec, nil
}

// MergeDay upserts the (user, day) row, updating only the fields present in
// the patch. Fields left nil keep their stored value; on first write they
// start at zero.
func (d *DB) MergeDay(ctx context.Context, userID int64, day string, patch domain.RecordPatch) error {
	ctx, cancel := d.opCtx(ctx)
	defer cancel()

	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO daily_records(user_id, day, water, sleep, steps, updated_at)
		 VALUES($1, $2, COALESCE($3, 0), COALESCE($4, 0), COALESCE($5, 0), $6)
		 ON CONFLICT (user_id, day) DO UPDATE SET
		   water = COALESCE($3, daily_records.water),
		   sleep = COALESCE($4, daily_records.sleep),
		   steps = COALESCE($5, daily_records.steps),
		   updated_at = $6;`,
		userID, day, nullable(patch.Water), nullable(patch.Sleep), nullable(patch.Steps), time.Now().UTC(),
	)
	if err != nil {
		return storeErr("merge day", err)
	}
	return nil
}

// ListDays returns every stored day for a user, day ascending.
func (d *DB) ListDays(ctx context.Context, userID int64) ([]domain.DailyRecord, error) {
	ctx, cancel := d.opCtx(ctx)
	defer cancel()

	rows, err := d.sql.QueryContext(ctx,
		"SELECT user_id, day, water, sleep, steps FROM daily_records WHERE user_id=$1 ORDER BY day ASC;", userID)
	if err != nil {
		return nil, storeErr("list days", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.DailyRecord
	for rows.Next() {
		var rec domain.DailyRecord
		if err := rows.Scan(&rec.UserID, &rec.Day, &rec.Water, &rec.Sleep, &rec.Steps); err != nil {
			return nil, storeErr("list days", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list days", err)
	}
	return out, nil
}

func nullable(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}
