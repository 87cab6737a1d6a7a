package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weighttracker/internal/domain"
)

// ListByAccount returns all entries for the account ordered by day ascending.
func (d *DB) ListByAccount(ctx context.Context, accountID int64) ([]domain.WeightEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, account_id, day, kg, created_at FROM weight_entries WHERE account_id = $1 ORDER BY day ASC;",
		accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WeightEntry
	for rows.Next() {
		var e domain.WeightEntry
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Day, &e.Kg, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Day = e.Day.UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetEntryByID retrieves an entry by id, (nil, nil) when absent.
func (d *DB) GetEntryByID(ctx context.Context, id int64) (*domain.WeightEntry, error) {
	var e domain.WeightEntry
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, account_id, day, kg, created_at FROM weight_entries WHERE id = $1;", id,
	).Scan(&e.ID, &e.AccountID, &e.Day, &e.Kg, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.Day = e.Day.UTC()
	return &e, nil
}

// Upsert finds-or-creates the entry for (accountID, day) inside a single
// transaction, overwriting kg when the row already exists.
func (d *DB) Upsert(ctx context.Context, accountID int64, day time.Time, kg float64) (*domain.WeightEntry, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	dayStr := day.Format(domain.DayFormat)

	var e domain.WeightEntry
	err = tx.QueryRowContext(ctx,
		"SELECT id, account_id, day, kg, created_at FROM weight_entries WHERE account_id = $1 AND day = $2 FOR UPDATE;",
		accountID, dayStr,
	).Scan(&e.ID, &e.AccountID, &e.Day, &e.Kg, &e.CreatedAt)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = tx.QueryRowContext(ctx,
			"INSERT INTO weight_entries (account_id, day, kg, created_at) VALUES ($1, $2, $3, $4) RETURNING id, account_id, day, kg, created_at;",
			accountID, dayStr, kg, time.Now(),
		).Scan(&e.ID, &e.AccountID, &e.Day, &e.Kg, &e.CreatedAt)
		if err != nil {
			return nil, mapConflict(err)
		}
	case err != nil:
		return nil, err
	default:
		if _, err = tx.ExecContext(ctx, "UPDATE weight_entries SET kg = $1 WHERE id = $2;", kg, e.ID); err != nil {
			return nil, err
		}
		e.Kg = kg
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	e.Day = e.Day.UTC()
	return &e, nil
}

// Update overwrites both day and kg. A move onto an occupied (account, day)
// pair trips the unique constraint and returns domain.ErrConflict.
func (d *DB) Update(ctx context.Context, id int64, day time.Time, kg float64) error {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE weight_entries SET day = $1, kg = $2 WHERE id = $3;",
		day.Format(domain.DayFormat), kg, id)
	if err != nil {
		return mapConflict(err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return err
}

// Delete removes an entry permanently.
func (d *DB) Delete(ctx context.Context, id int64) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM weight_entries WHERE id = $1;", id)
	return err
}
