package app

import (
	"context"
	"math"
	"time"

	"weighttracker/internal/domain"
)

// WeightService encapsulates the weight entry use cases.
type WeightService struct {
	repo domain.WeightRepository
}

// NewWeightService creates a WeightService backed by the given repository.
func NewWeightService(repo domain.WeightRepository) *WeightService {
	return &WeightService{repo: repo}
}

// Upsert records the weight for (account, day), overwriting the kg of an
// existing entry for that day rather than creating a duplicate.
func (s *WeightService) Upsert(ctx context.Context, accountID int64, day time.Time, kg float64) (*domain.WeightEntry, error) {
	if !validKg(kg) {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.Upsert(ctx, accountID, normalizeDay(day), kg)
}

// Get returns the entry with the given id, enforcing ownership.
func (s *WeightService) Get(ctx context.Context, accountID, entryID int64) (*domain.WeightEntry, error) {
	entry, err := s.repo.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	if entry.AccountID != accountID {
		return nil, domain.ErrAccessDenied
	}
	return entry, nil
}

// Edit overwrites both day and kg of an entry owned by the acting account.
// Moving the entry onto a day that already has one surfaces ErrConflict.
func (s *WeightService) Edit(ctx context.Context, accountID, entryID int64, day time.Time, kg float64) error {
	if !validKg(kg) {
		return domain.ErrInvalidInput
	}
	entry, err := s.repo.GetEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return domain.ErrNotFound
	}
	if entry.AccountID != accountID {
		return domain.ErrAccessDenied
	}
	return s.repo.Update(ctx, entryID, normalizeDay(day), kg)
}

// Delete removes an entry, reporting whether anything was deleted. Deleting
// an entry the account does not own is a silent no-op; an unknown id yields
// ErrNotFound.
func (s *WeightService) Delete(ctx context.Context, accountID, entryID int64) (bool, error) {
	entry, err := s.repo.GetEntryByID(ctx, entryID)
	if err != nil {
		return false, err
	}
	if entry == nil {
		return false, domain.ErrNotFound
	}
	if entry.AccountID != accountID {
		return false, nil
	}
	if err := s.repo.Delete(ctx, entryID); err != nil {
		return false, err
	}
	return true, nil
}

func validKg(kg float64) bool {
	return !math.IsNaN(kg) && !math.IsInf(kg, 0)
}

// normalizeDay truncates a timestamp to its calendar day at midnight UTC so
// that day equality and the (account, day) uniqueness constraint behave the
// same regardless of how the value was parsed.
func normalizeDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
