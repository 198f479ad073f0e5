// Package repository provides data persistence implementations for registrations
// and capability tokens.
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

// PostgreSQLTokenRepository implements CapabilityToken persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLTokenRepository struct {
	db *sql.DB
}

// Create inserts a new CapabilityToken into the PostgreSQL database. Uses
// transaction support via database.GetTx(). Returns an error if database
// insertion fails.
func (p *PostgreSQLTokenRepository) Create(ctx context.Context, token *domain.CapabilityToken) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO capability_tokens (id, registration_id, token_hash, expires_at, revoked_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.RegistrationID,
		token.TokenHash,
		token.ExpiresAt,
		token.RevokedAt,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create capability token")
	}
	return nil
}

// FindValidByHash retrieves the most recently created token matching the hash
// that is neither revoked nor expired at the given instant. The query shape is
// the whole resolution predicate: a hash that never existed, a revoked token
// and an expired token all produce the same ErrManageLinkNotFound.
func (p *PostgreSQLTokenRepository) FindValidByHash(
	ctx context.Context,
	tokenHash string,
	now time.Time,
) (*domain.CapabilityToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, registration_id, token_hash, expires_at, revoked_at, created_at
			  FROM capability_tokens
			  WHERE token_hash = $1 AND revoked_at IS NULL AND expires_at > $2
			  ORDER BY created_at DESC
			  LIMIT 1`

	var token domain.CapabilityToken

	err := querier.QueryRowContext(ctx, query, tokenHash, now).Scan(
		&token.ID,
		&token.RegistrationID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.RevokedAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrManageLinkNotFound
		}
		return nil, apperrors.Wrap(err, "failed to find capability token")
	}

	return &token, nil
}

// Revoke marks a single token revoked. Revocation is monotonic: the WHERE
// clause never clears an existing revoked_at.
func (p *PostgreSQLTokenRepository) Revoke(ctx context.Context, tokenID uuid.UUID, now time.Time) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE capability_tokens SET revoked_at = $1 WHERE id = $2 AND revoked_at IS NULL`

	_, err := querier.ExecContext(ctx, query, now, tokenID)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke capability token")
	}
	return nil
}

// RevokeAll revokes every non-revoked token of a registration and returns the
// number of rows affected.
func (p *PostgreSQLTokenRepository) RevokeAll(
	ctx context.Context,
	registrationID uuid.UUID,
	now time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE capability_tokens SET revoked_at = $1
			  WHERE registration_id = $2 AND revoked_at IS NULL`

	result, err := querier.ExecContext(ctx, query, now, registrationID)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to revoke capability tokens")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count revoked capability tokens")
	}
	return count, nil
}

// DeleteExpiredAndRevoked hard-deletes tokens that are both expired and
// revoked. Non-revoked tokens are never touched, even when expired.
func (p *PostgreSQLTokenRepository) DeleteExpiredAndRevoked(
	ctx context.Context,
	now time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM capability_tokens WHERE expires_at < $1 AND revoked_at IS NOT NULL`

	result, err := querier.ExecContext(ctx, query, now)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired capability tokens")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count deleted capability tokens")
	}
	return count, nil
}

// NewPostgreSQLTokenRepository creates a new PostgreSQL CapabilityToken repository.
func NewPostgreSQLTokenRepository(db *sql.DB) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{db: db}
}
