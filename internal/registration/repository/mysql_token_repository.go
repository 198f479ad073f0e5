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

// MySQLTokenRepository implements CapabilityToken persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLTokenRepository struct {
	db *sql.DB
}

// Create inserts a new CapabilityToken into the MySQL database using BINARY(16)
// for UUIDs. Returns an error if UUID marshaling or database insertion fails.
func (m *MySQLTokenRepository) Create(ctx context.Context, token *domain.CapabilityToken) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO capability_tokens (id, registration_id, token_hash, expires_at, revoked_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}

	registrationID, err := token.RegistrationID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal registration id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		registrationID,
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
// that is neither revoked nor expired at the given instant. Same uniform
// failure contract as the PostgreSQL implementation.
func (m *MySQLTokenRepository) FindValidByHash(
	ctx context.Context,
	tokenHash string,
	now time.Time,
) (*domain.CapabilityToken, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, registration_id, token_hash, expires_at, revoked_at, created_at
			  FROM capability_tokens
			  WHERE token_hash = ? AND revoked_at IS NULL AND expires_at > ?
			  ORDER BY created_at DESC
			  LIMIT 1`

	var token domain.CapabilityToken
	var id, registrationID []byte

	err := querier.QueryRowContext(ctx, query, tokenHash, now).Scan(
		&id,
		&registrationID,
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

	if token.ID, err = uuid.FromBytes(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal token id")
	}
	if token.RegistrationID, err = uuid.FromBytes(registrationID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal registration id")
	}

	return &token, nil
}

// Revoke marks a single token revoked.
func (m *MySQLTokenRepository) Revoke(ctx context.Context, tokenID uuid.UUID, now time.Time) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE capability_tokens SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`

	id, err := tokenID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}

	if _, err := querier.ExecContext(ctx, query, now, id); err != nil {
		return apperrors.Wrap(err, "failed to revoke capability token")
	}
	return nil
}

// RevokeAll revokes every non-revoked token of a registration.
func (m *MySQLTokenRepository) RevokeAll(
	ctx context.Context,
	registrationID uuid.UUID,
	now time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE capability_tokens SET revoked_at = ?
			  WHERE registration_id = ? AND revoked_at IS NULL`

	id, err := registrationID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal registration id")
	}

	result, err := querier.ExecContext(ctx, query, now, id)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to revoke capability tokens")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count revoked capability tokens")
	}
	return count, nil
}

// DeleteExpiredAndRevoked hard-deletes tokens that are both expired and revoked.
func (m *MySQLTokenRepository) DeleteExpiredAndRevoked(
	ctx context.Context,
	now time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM capability_tokens WHERE expires_at < ? AND revoked_at IS NOT NULL`

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

// NewMySQLTokenRepository creates a new MySQL CapabilityToken repository.
func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db}
}
