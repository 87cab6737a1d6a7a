package app

import (
	"context"

	"weighttracker/internal/domain"
)

// AccountService encapsulates account profile use cases.
type AccountService struct {
	repo domain.AccountRepository
}

// NewAccountService creates an AccountService backed by the given repository.
func NewAccountService(repo domain.AccountRepository) *AccountService {
	return &AccountService{repo: repo}
}

// UpdateGoal replaces the account's goal settings. Nil fields clear the
// stored values.
func (s *AccountService) UpdateGoal(ctx context.Context, accountID int64, goal domain.Goal) error {
	return s.repo.UpdateGoal(ctx, accountID, goal)
}
