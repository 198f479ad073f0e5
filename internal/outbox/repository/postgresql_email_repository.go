// Package repository provides data persistence implementations for the email outbox.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/rsvp/internal/database"
	apperrors "github.com/allisson/rsvp/internal/errors"
	"github.com/allisson/rsvp/internal/outbox/domain"
)

// PostgreSQLEmailRepository handles email outbox persistence for PostgreSQL.
type PostgreSQLEmailRepository struct {
	db *sql.DB
}

// NewPostgreSQLEmailRepository creates a new PostgreSQLEmailRepository.
func NewPostgreSQLEmailRepository(db *sql.DB) *PostgreSQLEmailRepository {
	return &PostgreSQLEmailRepository{db: db}
}

// Create inserts a new outbox email.
func (r *PostgreSQLEmailRepository) Create(ctx context.Context, email *domain.EmailMessage) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO email_outbox (id, recipient, subject, body, status, retries, last_error, processed_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, email.ID, email.Recipient, email.Subject, email.Body,
		email.Status, email.Retries, email.LastError, email.ProcessedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create outbox email")
	}
	return nil
}

// GetPending retrieves pending emails with a limit, oldest first. Rows are
// locked with SKIP LOCKED so concurrent relay runs never double-send.
func (r *PostgreSQLEmailRepository) GetPending(
	ctx context.Context,
	limit int,
) ([]*domain.EmailMessage, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, recipient, subject, body, status, retries, last_error, processed_at, created_at, updated_at
			  FROM email_outbox
			  WHERE status = $1
			  ORDER BY created_at ASC
			  LIMIT $2
			  FOR UPDATE SKIP LOCKED`

	rows, err := querier.QueryContext(ctx, query, domain.EmailStatusPending, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get pending emails")
	}
	defer rows.Close() //nolint:errcheck

	var emails []*domain.EmailMessage
	for rows.Next() {
		var email domain.EmailMessage
		err := rows.Scan(&email.ID, &email.Recipient, &email.Subject, &email.Body, &email.Status,
			&email.Retries, &email.LastError, &email.ProcessedAt, &email.CreatedAt, &email.UpdatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan outbox email")
		}
		emails = append(emails, &email)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to get pending emails")
	}
	return emails, nil
}

// Update updates an outbox email.
func (r *PostgreSQLEmailRepository) Update(ctx context.Context, email *domain.EmailMessage) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE email_outbox
			  SET recipient = $1, subject = $2, body = $3, status = $4, retries = $5,
				  last_error = $6, processed_at = $7, updated_at = NOW()
			  WHERE id = $8`

	_, err := querier.ExecContext(ctx, query, email.Recipient, email.Subject, email.Body,
		email.Status, email.Retries, email.LastError, email.ProcessedAt, email.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update outbox email")
	}
	return nil
}
