package domain

import (
	"context"
	"time"
)

// DayFormat is the calendar-day layout used throughout the application.
const DayFormat = "2006-01-02"

// WeightEntry represents one dated weight measurement belonging to exactly
// one account. At most one entry exists per (account, day) pair.
type WeightEntry struct {
	ID        int64
	AccountID int64
	Day       time.Time // date-only, midnight UTC
	Kg        float64
	CreatedAt time.Time
}

// WeightRepository is the port for weight entry persistence.
type WeightRepository interface {
	// ListByAccount returns all entries for the account ordered by day ascending.
	ListByAccount(ctx context.Context, accountID int64) ([]WeightEntry, error)
	GetEntryByID(ctx context.Context, id int64) (*WeightEntry, error)
	// Upsert creates an entry for (accountID, day) or overwrites the kg of an
	// existing one, inside a single transaction.
	Upsert(ctx context.Context, accountID int64, day time.Time, kg float64) (*WeightEntry, error)
	// Update overwrites both day and kg of an existing entry. Moving the entry
	// onto a day already occupied for the same account yields ErrConflict.
	Update(ctx context.Context, id int64, day time.Time, kg float64) error
	Delete(ctx context.Context, id int64) error
}
