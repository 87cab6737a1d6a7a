package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"weighttracker/internal/adapter/memory"
	"weighttracker/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAccountCreateAndLookup(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	created, err := db.Create(ctx, "alice", "hash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected non-zero id")
	}

	got, err := db.GetByUsername(ctx, "alice")
	if err != nil || got == nil || got.ID != created.ID {
		t.Fatalf("lookup failed: %v %v", got, err)
	}

	if _, err := db.Create(ctx, "alice", "other"); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate username, got %v", err)
	}
}

func TestAccountUpdateGoal(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	acct, _ := db.Create(ctx, "alice", "hash")

	height := 180.0
	goalStart := date(2024, 1, 1)
	err := db.UpdateGoal(ctx, acct.ID, domain.Goal{HeightCm: &height, GoalStart: &goalStart})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := db.GetByID(ctx, acct.ID)
	if got.HeightCm == nil || *got.HeightCm != 180 {
		t.Errorf("expected height 180, got %v", got.HeightCm)
	}
	if got.StartWeight != nil {
		t.Error("expected start weight cleared")
	}

	// Clearing everything stores nils.
	if err := db.UpdateGoal(ctx, acct.ID, domain.Goal{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ = db.GetByID(ctx, acct.ID)
	if got.HeightCm != nil || got.GoalStart != nil {
		t.Error("expected goal fields cleared")
	}

	if err := db.UpdateGoal(ctx, 999, domain.Goal{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpsertOverwritesSameDay(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	day := date(2024, 1, 1)
	first, err := db.Upsert(ctx, 1, day, 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := db.Upsert(ctx, 1, day, 79.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected overwrite of entry %d, got new id %d", first.ID, second.ID)
	}

	entries, _ := db.ListByAccount(ctx, 1)
	if len(entries) != 1 {
		t.Fatalf("expected one entry per (account, day), got %d", len(entries))
	}
	if entries[0].Kg != 79.5 {
		t.Fatalf("expected kg 79.5, got %v", entries[0].Kg)
	}
}

func TestUpsertIsPerAccount(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	day := date(2024, 1, 1)
	_, _ = db.Upsert(ctx, 1, day, 80)
	_, _ = db.Upsert(ctx, 2, day, 90)

	one, _ := db.ListByAccount(ctx, 1)
	two, _ := db.ListByAccount(ctx, 2)
	if len(one) != 1 || len(two) != 1 {
		t.Fatalf("expected one entry per account, got %d and %d", len(one), len(two))
	}
}

func TestListByAccountOrdered(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	_, _ = db.Upsert(ctx, 1, date(2024, 1, 15), 76)
	_, _ = db.Upsert(ctx, 1, date(2024, 1, 1), 80)
	_, _ = db.Upsert(ctx, 1, date(2024, 1, 8), 78)

	entries, _ := db.ListByAccount(ctx, 1)
	for i := 1; i < len(entries); i++ {
		if entries[i].Day.Before(entries[i-1].Day) {
			t.Fatalf("entries not ordered by day: %v", entries)
		}
	}
}

func TestUpdateConflictOnOccupiedDay(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	a, _ := db.Upsert(ctx, 1, date(2024, 1, 1), 80)
	b, _ := db.Upsert(ctx, 1, date(2024, 1, 2), 79)

	err := db.Update(ctx, b.ID, a.Day, 78)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// Re-saving the same day for the same entry is not a conflict.
	if err := db.Update(ctx, b.ID, b.Day, 78); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteEntry(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	e, _ := db.Upsert(ctx, 1, date(2024, 1, 1), 80)
	if err := db.Delete(ctx, e.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := db.GetEntryByID(ctx, e.ID)
	if got != nil {
		t.Fatal("expected entry gone")
	}
}

func TestSessions(t *testing.T) {
	db := memory.New()
	sessions := memory.NewSessionRepo(db)
	ctx := context.Background()

	if err := sessions.Create(ctx, 1, "tok", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, _ := sessions.GetByToken(ctx, "tok")
	if s == nil || s.AccountID != 1 {
		t.Fatalf("unexpected session: %v", s)
	}

	_ = sessions.Create(ctx, 2, "old", time.Now().Add(-time.Hour))
	if err := sessions.DeleteExpired(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, _ := sessions.GetByToken(ctx, "old"); s != nil {
		t.Fatal("expected expired session removed")
	}
	if s, _ := sessions.GetByToken(ctx, "tok"); s == nil {
		t.Fatal("expected live session kept")
	}

	_ = sessions.Delete(ctx, "tok")
	if s, _ := sessions.GetByToken(ctx, "tok"); s != nil {
		t.Fatal("expected session deleted")
	}
}
