// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// Account represents a registered user and the owner of its weight history
// and goal settings.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string

	// Goal settings. All optional; nil means unset.
	HeightCm     *float64
	StartWeight  *float64
	TargetWeight *float64
	GoalStart    *time.Time

	CreatedAt time.Time
}

// Goal carries a full replacement of an account's goal settings.
// A nil field clears the stored value.
type Goal struct {
	HeightCm     *float64
	StartWeight  *float64
	TargetWeight *float64
	GoalStart    *time.Time
}

// Session represents an active login session.
type Session struct {
	Token     string
	AccountID int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// AccountRepository defines the port for account persistence operations.
// Lookups return (nil, nil) when no row matches.
type AccountRepository interface {
	GetByUsername(ctx context.Context, username string) (*Account, error)
	GetByID(ctx context.Context, id int64) (*Account, error)
	Create(ctx context.Context, username, passwordHash string) (*Account, error)
	UpdateGoal(ctx context.Context, id int64, goal Goal) error
}

// SessionRepository defines the port for session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, accountID int64, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
