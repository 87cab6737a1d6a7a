package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"weighttracker/internal/app"
	"weighttracker/internal/domain"
)

type mockAccountRepo struct {
	byUsernameFn func(ctx context.Context, username string) (*domain.Account, error)
	byIDFn       func(ctx context.Context, id int64) (*domain.Account, error)
	createFn     func(ctx context.Context, username, passwordHash string) (*domain.Account, error)
	updateGoalFn func(ctx context.Context, id int64, goal domain.Goal) error
}

func (m *mockAccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if m.byUsernameFn != nil {
		return m.byUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.byIDFn != nil {
		return m.byIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAccountRepo) Create(ctx context.Context, username, passwordHash string) (*domain.Account, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, passwordHash)
	}
	return &domain.Account{ID: 1, Username: username, PasswordHash: passwordHash}, nil
}

func (m *mockAccountRepo) UpdateGoal(ctx context.Context, id int64, goal domain.Goal) error {
	if m.updateGoalFn != nil {
		return m.updateGoalFn(ctx, id, goal)
	}
	return nil
}

type mockSessionRepo struct {
	createFn  func(ctx context.Context, accountID int64, token string, expiresAt time.Time) error
	byTokenFn func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn  func(ctx context.Context, token string) error
}

func (m *mockSessionRepo) Create(ctx context.Context, accountID int64, token string, expiresAt time.Time) error {
	if m.createFn != nil {
		return m.createFn(ctx, accountID, token, expiresAt)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.byTokenFn != nil {
		return m.byTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error { return nil }

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(hash)
}

func TestRegister_Validation(t *testing.T) {
	svc := app.NewAuthService(&mockAccountRepo{}, &mockSessionRepo{})

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "secret"},
		{"empty password", "alice", ""},
		{"whitespace only", "   ", "  "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.username, tc.password)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRegister_TakenUsername(t *testing.T) {
	repo := &mockAccountRepo{
		byUsernameFn: func(_ context.Context, username string) (*domain.Account, error) {
			return &domain.Account{ID: 1, Username: username}, nil
		},
	}
	svc := app.NewAuthService(repo, &mockSessionRepo{})

	_, err := svc.Register(context.Background(), "alice", "secret")
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestRegister_TrimsAndHashes(t *testing.T) {
	var gotUsername, gotHash string
	repo := &mockAccountRepo{
		createFn: func(_ context.Context, username, passwordHash string) (*domain.Account, error) {
			gotUsername, gotHash = username, passwordHash
			return &domain.Account{ID: 1, Username: username, PasswordHash: passwordHash}, nil
		},
	}
	svc := app.NewAuthService(repo, &mockSessionRepo{})

	if _, err := svc.Register(context.Background(), "  alice ", " secret "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUsername != "alice" {
		t.Errorf("expected trimmed username, got %q", gotUsername)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(gotHash), []byte("secret")); err != nil {
		t.Errorf("stored hash does not match trimmed password: %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	hash := hashOf(t, "secret")
	repo := &mockAccountRepo{
		byUsernameFn: func(_ context.Context, username string) (*domain.Account, error) {
			return &domain.Account{ID: 7, Username: username, PasswordHash: hash}, nil
		},
	}
	var createdFor int64
	sessions := &mockSessionRepo{
		createFn: func(_ context.Context, accountID int64, token string, _ time.Time) error {
			createdFor = accountID
			return nil
		},
	}
	svc := app.NewAuthService(repo, sessions)

	token, err := svc.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if createdFor != 7 {
		t.Fatalf("expected session for account 7, got %d", createdFor)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash := hashOf(t, "secret")
	repo := &mockAccountRepo{
		byUsernameFn: func(_ context.Context, username string) (*domain.Account, error) {
			return &domain.Account{ID: 7, Username: username, PasswordHash: hash}, nil
		},
	}
	svc := app.NewAuthService(repo, &mockSessionRepo{})

	_, err := svc.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := app.NewAuthService(&mockAccountRepo{}, &mockSessionRepo{})

	_, err := svc.Login(context.Background(), "nobody", "secret")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestValidateSession_Expired(t *testing.T) {
	deleted := ""
	sessions := &mockSessionRepo{
		byTokenFn: func(_ context.Context, token string) (*domain.Session, error) {
			return &domain.Session{Token: token, AccountID: 1, ExpiresAt: time.Now().Add(-time.Minute)}, nil
		},
		deleteFn: func(_ context.Context, token string) error {
			deleted = token
			return nil
		},
	}
	svc := app.NewAuthService(&mockAccountRepo{}, sessions)

	_, err := svc.ValidateSession(context.Background(), "tok")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired session, got %v", err)
	}
	if deleted != "tok" {
		t.Fatal("expected expired session to be deleted")
	}
}

func TestValidateSession_Success(t *testing.T) {
	sessions := &mockSessionRepo{
		byTokenFn: func(_ context.Context, token string) (*domain.Session, error) {
			return &domain.Session{Token: token, AccountID: 3, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	accounts := &mockAccountRepo{
		byIDFn: func(_ context.Context, id int64) (*domain.Account, error) {
			return &domain.Account{ID: id, Username: "alice"}, nil
		},
	}
	svc := app.NewAuthService(accounts, sessions)

	acct, err := svc.ValidateSession(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acct == nil || acct.ID != 3 {
		t.Fatalf("unexpected account: %v", acct)
	}
}

func TestLoginWithAccount_AutoProvision(t *testing.T) {
	created := false
	repo := &mockAccountRepo{
		createFn: func(_ context.Context, username, passwordHash string) (*domain.Account, error) {
			created = true
			if passwordHash != "" {
				t.Fatalf("sso account should have no password hash, got %q", passwordHash)
			}
			return &domain.Account{ID: 9, Username: username}, nil
		},
	}
	svc := app.NewAuthService(repo, &mockSessionRepo{})

	token, err := svc.LoginWithAccount(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" || !created {
		t.Fatal("expected auto-provisioned account and session token")
	}
}
