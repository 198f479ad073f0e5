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

// MySQLRegistrationRepository implements Registration persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLRegistrationRepository struct {
	db *sql.DB
}

// Create inserts a new Registration into the MySQL database.
func (m *MySQLRegistrationRepository) Create(
	ctx context.Context,
	registration *domain.Registration,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO registrations
			  (id, guest_name, email, adults_count, children_count, dietary, notes, status, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := registration.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal registration id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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

// Update modifies an existing Registration in the MySQL database.
func (m *MySQLRegistrationRepository) Update(
	ctx context.Context,
	registration *domain.Registration,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE registrations
			  SET guest_name = ?,
				  email = ?,
				  adults_count = ?,
				  children_count = ?,
				  dietary = ?,
				  notes = ?,
				  status = ?,
				  updated_at = ?
			  WHERE id = ?`

	id, err := registration.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal registration id")
	}

	_, err = querier.ExecContext(
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
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update registration")
	}
	return nil
}

// Get retrieves a Registration by ID. Returns ErrRegistrationNotFound if the
// registration doesn't exist.
func (m *MySQLRegistrationRepository) Get(
	ctx context.Context,
	registrationID uuid.UUID,
) (*domain.Registration, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, guest_name, email, adults_count, children_count, dietary, notes, status, created_at, updated_at
			  FROM registrations WHERE id = ?`

	id, err := registrationID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal registration id")
	}

	return m.scanRegistration(querier.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a Registration by guest email, most recent first.
// Returns ErrRegistrationNotFound if none exists.
func (m *MySQLRegistrationRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*domain.Registration, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, guest_name, email, adults_count, children_count, dietary, notes, status, created_at, updated_at
			  FROM registrations WHERE email = ?
			  ORDER BY created_at DESC
			  LIMIT 1`

	return m.scanRegistration(querier.QueryRowContext(ctx, query, email))
}

// List returns a page of registrations ordered by creation time, newest first.
func (m *MySQLRegistrationRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Registration, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, guest_name, email, adults_count, children_count, dietary, notes, status, created_at, updated_at
			  FROM registrations
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list registrations")
	}
	defer rows.Close() //nolint:errcheck

	var registrations []*domain.Registration
	for rows.Next() {
		registration, err := scanRegistrationRow(rows)
		if err != nil {
			return nil, err
		}
		registrations = append(registrations, registration)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to list registrations")
	}
	return registrations, nil
}

// DeleteCancelledBefore hard-deletes cancelled registrations whose last update
// precedes the cutoff.
func (m *MySQLRegistrationRepository) DeleteCancelledBefore(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM registrations WHERE status = ? AND updated_at < ?`

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
func (m *MySQLRegistrationRepository) scanRegistration(row *sql.Row) (*domain.Registration, error) {
	var registration domain.Registration
	var id []byte

	err := row.Scan(
		&id,
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

	if registration.ID, err = uuid.FromBytes(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal registration id")
	}

	return &registration, nil
}

// scanRegistrationRow scans a multi-row result row into a Registration.
func scanRegistrationRow(rows *sql.Rows) (*domain.Registration, error) {
	var registration domain.Registration
	var id []byte

	err := rows.Scan(
		&id,
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

	if registration.ID, err = uuid.FromBytes(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal registration id")
	}

	return &registration, nil
}

// NewMySQLRegistrationRepository creates a new MySQL Registration repository.
func NewMySQLRegistrationRepository(db *sql.DB) *MySQLRegistrationRepository {
	return &MySQLRegistrationRepository{db: db}
}
