// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"weighttracker/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SessionTTL is how long a login session stays valid.
const SessionTTL = 24 * time.Hour

// AuthService handles registration, authentication and session management.
type AuthService struct {
	accounts domain.AccountRepository
	sessions domain.SessionRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(accounts domain.AccountRepository, sessions domain.SessionRepository) *AuthService {
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
	}
}

// Register creates a new account. Username and password are trimmed first;
// either being empty yields ErrInvalidInput, a taken username ErrConflict.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	acct, err := s.accounts.Create(ctx, username, string(hash))
	if err != nil {
		// Lost a race on the unique constraint.
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return acct, nil
}

// Login authenticates an account and creates a session, returning the token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	acct, err := s.accounts.GetByUsername(ctx, username)
	if err != nil || acct == nil {
		return "", domain.ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.createSession(ctx, acct.ID)
}

// LoginWithAccount creates a session for an externally authenticated username
// (SSO), auto-provisioning the account on first login.
func (s *AuthService) LoginWithAccount(ctx context.Context, username string) (string, error) {
	acct, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if acct == nil {
		// No usable password; SSO accounts authenticate upstream.
		acct, err = s.accounts.Create(ctx, username, "")
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				acct, err = s.accounts.GetByUsername(ctx, username)
			}
			if err != nil || acct == nil {
				return "", err
			}
		}
	}
	return s.createSession(ctx, acct.ID)
}

// Logout invalidates a session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateSession resolves a session token to its account, deleting the
// session when expired.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.Account, error) {
	sess, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, domain.ErrNotFound
	}

	if time.Now().After(sess.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, domain.ErrNotFound
	}

	acct, err := s.accounts.GetByID(ctx, sess.AccountID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, domain.ErrNotFound
	}
	return acct, nil
}

func (s *AuthService) createSession(ctx context.Context, accountID int64) (string, error) {
	token := uuid.NewString()
	expiresAt := time.Now().Add(SessionTTL)
	if err := s.sessions.Create(ctx, accountID, token, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}
