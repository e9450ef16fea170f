package memory_test

import (
	"context"
	"testing"
	"time"

	"healthtrack/internal/adapter/memory"
	"healthtrack/internal/domain"
)

func intp(n int) *int { return &n }

func TestMergeDay_CreatesOnFirstWrite(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	if err := db.MergeDay(ctx, 1, "2026-02-08", domain.RecordPatch{Water: intp(3)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, err := db.GetDay(ctx, 1, "2026-02-08")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec == nil {
		t.Fatal("expected record to exist after merge write")
	}
	if rec.Water != 3 || rec.Sleep != 0 || rec.Steps != 0 {
		t.Fatalf("expected {3 0 0}, got %+v", rec)
	}
}

func TestMergeDay_PartialPatchPreservesSiblings(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	full := domain.RecordPatch{Water: intp(2), Sleep: intp(5), Steps: intp(100)}
	if err := db.MergeDay(ctx, 1, "2026-02-08", full); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := db.MergeDay(ctx, 1, "2026-02-08", domain.RecordPatch{Steps: intp(600)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, err := db.GetDay(ctx, 1, "2026-02-08")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Water != 2 || rec.Sleep != 5 || rec.Steps != 600 {
		t.Fatalf("partial patch clobbered siblings: %+v", rec)
	}
}

func TestGetDay_AbsentIsNil(t *testing.T) {
	db := memory.New()

	rec, err := db.GetDay(context.Background(), 1, "2026-02-08")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil for absent day, got %+v", rec)
	}
}

func TestListDays_SortedAscendingPerUser(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	for _, day := range []string{"2026-02-08", "2026-01-30", "2026-02-01"} {
		if err := db.MergeDay(ctx, 1, day, domain.RecordPatch{Water: intp(1)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// Another user's days must not leak in.
	if err := db.MergeDay(ctx, 2, "2026-02-02", domain.RecordPatch{Water: intp(9)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	days, err := db.ListDays(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"2026-01-30", "2026-02-01", "2026-02-08"}
	if len(days) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(days))
	}
	for i, rec := range days {
		if rec.Day != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], rec.Day)
		}
		if rec.UserID != 1 {
			t.Errorf("unexpected user %d in listing", rec.UserID)
		}
	}
}

func TestSessions_Lifecycle(t *testing.T) {
	db := memory.New()
	repo := memory.NewSessionRepo(db)
	ctx := context.Background()

	if err := repo.Create(ctx, 1, "tok", "agent", "127.0.0.1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err := repo.GetByToken(ctx, "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s == nil || s.UserID != 1 || s.UserAgent != "agent" {
		t.Fatalf("unexpected session: %+v", s)
	}

	if err := repo.Delete(ctx, "tok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, err = repo.GetByToken(ctx, "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != nil {
		t.Fatal("expected session to be deleted")
	}
}

func TestSessions_DeleteExpired(t *testing.T) {
	db := memory.New()
	repo := memory.NewSessionRepo(db)
	ctx := context.Background()

	_ = repo.Create(ctx, 1, "old", "agent", "ip", time.Now().Add(-time.Minute))
	_ = repo.Create(ctx, 1, "fresh", "agent", "ip", time.Now().Add(time.Hour))

	if err := repo.DeleteExpired(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s, _ := repo.GetByToken(ctx, "old"); s != nil {
		t.Error("expected expired session to be removed")
	}
	if s, _ := repo.GetByToken(ctx, "fresh"); s == nil {
		t.Error("expected fresh session to remain")
	}
}
