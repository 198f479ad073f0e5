package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/rsvp/internal/database"
	apperrors "github.com/allisson/rsvp/internal/errors"
	"github.com/allisson/rsvp/internal/outbox/domain"
)

// MySQLEmailRepository handles email outbox persistence for MySQL.
// Uses BINARY(16) for UUIDs.
type MySQLEmailRepository struct {
	db *sql.DB
}

// NewMySQLEmailRepository creates a new MySQLEmailRepository.
func NewMySQLEmailRepository(db *sql.DB) *MySQLEmailRepository {
	return &MySQLEmailRepository{db: db}
}

// Create inserts a new outbox email.
func (r *MySQLEmailRepository) Create(ctx context.Context, email *domain.EmailMessage) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO email_outbox (id, recipient, subject, body, status, retries, last_error, processed_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	id, err := email.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal email id")
	}

	_, err = querier.ExecContext(ctx, query, id, email.Recipient, email.Subject, email.Body,
		email.Status, email.Retries, email.LastError, email.ProcessedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create outbox email")
	}
	return nil
}

// GetPending retrieves pending emails with a limit, oldest first.
func (r *MySQLEmailRepository) GetPending(
	ctx context.Context,
	limit int,
) ([]*domain.EmailMessage, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, recipient, subject, body, status, retries, last_error, processed_at, created_at, updated_at
			  FROM email_outbox
			  WHERE status = ?
			  ORDER BY created_at ASC
			  LIMIT ?
			  FOR UPDATE SKIP LOCKED`

	rows, err := querier.QueryContext(ctx, query, domain.EmailStatusPending, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get pending emails")
	}
	defer rows.Close() //nolint:errcheck

	var emails []*domain.EmailMessage
	for rows.Next() {
		var email domain.EmailMessage
		var id []byte
		err := rows.Scan(&id, &email.Recipient, &email.Subject, &email.Body, &email.Status,
			&email.Retries, &email.LastError, &email.ProcessedAt, &email.CreatedAt, &email.UpdatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan outbox email")
		}
		if email.ID, err = uuid.FromBytes(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal email id")
		}
		emails = append(emails, &email)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to get pending emails")
	}
	return emails, nil
}

// Update updates an outbox email.
func (r *MySQLEmailRepository) Update(ctx context.Context, email *domain.EmailMessage) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE email_outbox
			  SET recipient = ?, subject = ?, body = ?, status = ?, retries = ?,
				  last_error = ?, processed_at = ?, updated_at = NOW()
			  WHERE id = ?`

	id, err := email.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal email id")
	}

	_, err = querier.ExecContext(ctx, query, email.Recipient, email.Subject, email.Body,
		email.Status, email.Retries, email.LastError, email.ProcessedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update outbox email")
	}
	return nil
}
