package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weighttracker/internal/domain"
)

const accountColumns = "id, username, password_hash, height_cm, start_weight, target_weight, goal_start, created_at"

// GetByUsername retrieves an account by username, (nil, nil) when absent.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE username = $1", username)
	return scanAccount(row)
}

// GetByID retrieves an account by id, (nil, nil) when absent.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id = $1", id)
	return scanAccount(row)
}

// Create creates a new account. A taken username yields domain.ErrConflict.
func (d *DB) Create(ctx context.Context, username, passwordHash string) (*domain.Account, error) {
	row := d.sql.QueryRowContext(ctx,
		"INSERT INTO accounts (username, password_hash, created_at) VALUES ($1, $2, $3) RETURNING "+accountColumns,
		username, passwordHash, time.Now())
	acct, err := scanAccount(row)
	if err != nil {
		return nil, mapConflict(err)
	}
	return acct, nil
}

// UpdateGoal replaces the account's goal settings; nil fields store NULL.
func (d *DB) UpdateGoal(ctx context.Context, id int64, goal domain.Goal) error {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE accounts SET height_cm = $1, start_weight = $2, target_weight = $3, goal_start = $4 WHERE id = $5",
		goal.HeightCm, goal.StartWeight, goal.TargetWeight, nullDay(goal.GoalStart), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return err
}

func scanAccount(row *sql.Row) (*domain.Account, error) {
	var (
		a         domain.Account
		height    sql.NullFloat64
		start     sql.NullFloat64
		target    sql.NullFloat64
		goalStart sql.NullTime
	)
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &height, &start, &target, &goalStart, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if height.Valid {
		a.HeightCm = &height.Float64
	}
	if start.Valid {
		a.StartWeight = &start.Float64
	}
	if target.Valid {
		a.TargetWeight = &target.Float64
	}
	if goalStart.Valid {
		day := goalStart.Time.UTC()
		a.GoalStart = &day
	}
	return &a, nil
}

func nullDay(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(domain.DayFormat)
}
