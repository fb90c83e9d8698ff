package repository

import (
	"context"
	"errors"
	"time"

	"job-match/internal/database"
	"job-match/internal/domain/tracker"

	"github.com/google/uuid"
)

var (
	ErrTrackedApplicationNotFound = errors.New("tracked application not found")
)

// MutateFunc receives the stored record and returns the record to persist.
// Returning an error aborts the update and leaves the record unchanged.
type MutateFunc func(current tracker.Application) (tracker.Application, error)

type TrackedApplicationRepository interface {
	Create(ctx context.Context, a tracker.Application) (tracker.Application, error)
	FindByID(ctx context.Context, id uuid.UUID) (tracker.Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]tracker.Application, error)
	Update(ctx context.Context, id uuid.UUID, mutate MutateFunc) (tracker.Application, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type PostgresTrackedApplicationRepository struct {
	db database.DB
}

func NewPostgresTrackedApplicationRepository(db database.DB) *PostgresTrackedApplicationRepository {
	return &PostgresTrackedApplicationRepository{db: db}
}

const trackedApplicationColumns = `id, user_id, company, position, status, date_applied, notes, created_at, updated_at`

func scanTrackedApplication(row database.Row) (tracker.Application, error) {
	var a tracker.Application
	var status string
	if err := row.Scan(&a.ID, &a.UserID, &a.Company, &a.Position, &status, &a.DateApplied, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return tracker.Application{}, err
	}
	a.Status = tracker.Status(status)
	a.DateApplied = dateOnly(a.DateApplied)
	return a, nil
}

func (r *PostgresTrackedApplicationRepository) Create(ctx context.Context, a tracker.Application) (tracker.Application, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO tracked_applications (id, user_id, company, position, status, date_applied, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+trackedApplicationColumns,
		a.ID, a.UserID, a.Company, a.Position, string(a.Status), a.DateApplied, a.Notes,
	)
	return scanTrackedApplication(row)
}

func (r *PostgresTrackedApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (tracker.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+trackedApplicationColumns+` FROM tracked_applications WHERE id = $1`, id)
	a, err := scanTrackedApplication(row)
	if err != nil {
		if database.IsNoRows(err) {
			return tracker.Application{}, ErrTrackedApplicationNotFound
		}
		return tracker.Application{}, err
	}
	return a, nil
}

func (r *PostgresTrackedApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]tracker.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+trackedApplicationColumns+`
		 FROM tracked_applications
		 WHERE user_id = $1
		 ORDER BY seq ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]tracker.Application, 0)
	for rows.Next() {
		a, err := scanTrackedApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update locks the row for the duration of mutate so concurrent updates serialize.
func (r *PostgresTrackedApplicationRepository) Update(ctx context.Context, id uuid.UUID, mutate MutateFunc) (tracker.Application, error) {
	var updated tracker.Application
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		row := tx.QueryRow(ctx,
			`SELECT `+trackedApplicationColumns+` FROM tracked_applications WHERE id = $1 FOR UPDATE`,
			id,
		)
		current, err := scanTrackedApplication(row)
		if err != nil {
			if database.IsNoRows(err) {
				return ErrTrackedApplicationNotFound
			}
			return err
		}

		next, err := mutate(current)
		if err != nil {
			return err
		}

		row = tx.QueryRow(ctx,
			`UPDATE tracked_applications
			 SET company = $1, position = $2, status = $3, date_applied = $4, notes = $5, updated_at = now()
			 WHERE id = $6
			 RETURNING `+trackedApplicationColumns,
			next.Company, next.Position, string(next.Status), next.DateApplied, next.Notes, id,
		)
		updated, err = scanTrackedApplication(row)
		return err
	})
	if err != nil {
		return tracker.Application{}, err
	}
	return updated, nil
}

func (r *PostgresTrackedApplicationRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM tracked_applications WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTrackedApplicationNotFound
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
