// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"weighttracker/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	accounts []*domain.Account
	entries  []domain.WeightEntry
	sessions map[string]*domain.Session

	accountIDCounter int64
	entryIDCounter   int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.AccountRepository = (*DB)(nil)
var _ domain.WeightRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- AccountRepository ---

// GetByUsername retrieves an account by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

// GetByID retrieves an account by id.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

// Create creates a new account.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.Username == username {
			return nil, domain.ErrConflict
		}
	}

	db.accountIDCounter++
	a := &domain.Account{
		ID:           db.accountIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	db.accounts = append(db.accounts, a)
	cp := *a
	return &cp, nil
}

// UpdateGoal replaces the account's goal settings.
func (db *DB) UpdateGoal(ctx context.Context, id int64, goal domain.Goal) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.ID == id {
			a.HeightCm = goal.HeightCm
			a.StartWeight = goal.StartWeight
			a.TargetWeight = goal.TargetWeight
			a.GoalStart = goal.GoalStart
			return nil
		}
	}
	return domain.ErrNotFound
}

// --- WeightRepository ---

// ListByAccount returns the account's entries ordered by day ascending.
func (db *DB) ListByAccount(ctx context.Context, accountID int64) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.WeightEntry
	for _, e := range db.entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

// GetEntryByID retrieves an entry by id.
func (db *DB) GetEntryByID(ctx context.Context, id int64) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, e := range db.entries {
		if e.ID == id {
			cp := e
			return &cp, nil
		}
	}
	return nil, nil
}

// Upsert creates or overwrites the entry for (accountID, day).
func (db *DB) Upsert(ctx context.Context, accountID int64, day time.Time, kg float64) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.entries {
		e := &db.entries[i]
		if e.AccountID == accountID && e.Day.Equal(day) {
			e.Kg = kg
			cp := *e
			return &cp, nil
		}
	}

	db.entryIDCounter++
	e := domain.WeightEntry{
		ID:        db.entryIDCounter,
		AccountID: accountID,
		Day:       day,
		Kg:        kg,
		CreatedAt: time.Now(),
	}
	db.entries = append(db.entries, e)
	return &e, nil
}

// Update overwrites both day and kg of an entry.
func (db *DB) Update(ctx context.Context, id int64, day time.Time, kg float64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	var target *domain.WeightEntry
	for i := range db.entries {
		if db.entries[i].ID == id {
			target = &db.entries[i]
			break
		}
	}
	if target == nil {
		return domain.ErrNotFound
	}

	for i := range db.entries {
		e := &db.entries[i]
		if e.ID != id && e.AccountID == target.AccountID && e.Day.Equal(day) {
			return domain.ErrConflict
		}
	}

	target.Day = day
	target.Kg = kg
	return nil
}

// Delete removes an entry.
func (db *DB) Delete(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.entries {
		if db.entries[i].ID == id {
			db.entries = append(db.entries[:i], db.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

// --- SessionRepository ---

// SessionRepo implements session operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, accountID int64, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		AccountID: accountID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.sessions[token]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	now := time.Now()
	for token, s := range r.db.sessions {
		if now.After(s.ExpiresAt) {
			delete(r.db.sessions, token)
		}
	}
	return nil
}
