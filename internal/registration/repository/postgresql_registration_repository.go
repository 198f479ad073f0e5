package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/rsvp/internal/database"
	apperrors "github.com/allisson/rsvp/internal/errors"
	"github.com/allisson/rsvp/internal/registration/domain"
)

// PostgreSQLRegistrationRepository implements Registration persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLRegistrationRepository struct {
	db *sql.DB
}

// Create inserts a new Registration into the PostgreSQL database.
func (p *PostgreSQLRegistrationRepository) Create(
	ctx context.Context,
	registration *domain.Registration,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO registrations
			  (id, guest_name, email, adults_count, children_count, dietary, notes, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		registration.ID,
		registration.GuestName,
		registration.Email,
		registration.AdultsCount,
		registration.ChildrenCount,
		registration.Dietary,
		registration.Notes,
		registration.Status,
		registration.CreatedAt,
		registration.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create registration")
	}
	return nil
}

// Update modifies an existing Registration in the PostgreSQL database.
func (p *PostgreSQLRegistrationRepository) Update(
	ctx context.Context,
	registration *domain.Registration,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE registrations
			  SET guest_name = $1,
				  email = $2,
				  adults_count = $3,
				  children_count = $4,
				  dietary = $5,
				  notes = $6,
				  status = $7,
				  updated_at = $8
			  WHERE id = $9`

	_, err := querier.ExecContext(
		ctx,
		query,
		registration.GuestName,
		registration.Email,
		registration.AdultsCount,
		registration.ChildrenCount,
		registration.Dietary,
		registration.Notes,
		registration.Status,
		registration.UpdatedAt,
		registration.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update registration")
	}
	return nil
}

// Get retrieves a Registration by ID. Returns ErrRegistrationNotFound if the
// registration doesn't exist.
func (p *PostgreSQLRegistrationRepository) Get(
	ctx context.Context,
	registrationID uuid.UUID,
) (*domain.Registration, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, guest_name, email, adults_count, children_count, dietary, notes, status, created_at, updated_at
			  FROM registrations WHERE id = $1`

	return p.scanRegistration(querier.QueryRowContext(ctx, query, registrationID))
}

// GetByEmail retrieves a Registration by guest email. When several rows share
// an email the most recent one wins. Returns ErrRegistrationNotFound if none
// exists.
func (p *PostgreSQLRegistrationRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*domain.Registration, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, guest_name, email, adults_count, children_count, dietary, notes, status, created_at, updated_at
			  FROM registrations WHERE email = $1
			  ORDER BY created_at DESC
			  LIMIT 1`

	return p.scanRegistration(querier.QueryRowContext(ctx, query, email))
}

// List returns a page of registrations ordered by creation time, newest first.
func (p *PostgreSQLRegistrationRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Registration, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, guest_name, email, adults_count, children_count, dietary, notes, status, created_at, updated_at
			  FROM registrations
			  ORDER BY created_at DESC
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list registrations")
	}
	defer rows.Close() //nolint:errcheck

	var registrations []*domain.Registration
	for rows.Next() {
		var registration domain.Registration
		err := rows.Scan(
			&registration.ID,
			&registration.GuestName,
			&registration.Email,
			&registration.AdultsCount,
			&registration.ChildrenCount,
			&registration.Dietary,
			&registration.Notes,
			&registration.Status,
			&registration.CreatedAt,
			&registration.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan registration")
		}
		registrations = append(registrations, &registration)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to list registrations")
	}
	return registrations, nil
}

// DeleteCancelledBefore hard-deletes cancelled registrations whose last update
// precedes the cutoff. The predicate only ever matches cancelled rows, so
// confirmed registrations are categorically excluded.
func (p *PostgreSQLRegistrationRepository) DeleteCancelledBefore(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM registrations WHERE status = $1 AND updated_at < $2`

	result, err := querier.ExecContext(ctx, query, domain.StatusCancelled, cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete cancelled registrations")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count deleted registrations")
	}
	return count, nil
}

// scanRegistration scans a single row into a Registration.
func (p *PostgreSQLRegistrationRepository) scanRegistration(row *sql.Row) (*domain.Registration, error) {
	var registration domain.Registration

	err := row.Scan(
		&registration.ID,
		&registration.GuestName,
		&registration.Email,
		&registration.AdultsCount,
		&registration.ChildrenCount,
		&registration.Dietary,
		&registration.Notes,
		&registration.Status,
		&registration.CreatedAt,
		&registration.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get registration")
	}

	return &registration, nil
}

// NewPostgreSQLRegistrationRepository creates a new PostgreSQL Registration repository.
func NewPostgreSQLRegistrationRepository(db *sql.DB) *PostgreSQLRegistrationRepository {
	return &PostgreSQLRegistrationRepository{db: db}
}
