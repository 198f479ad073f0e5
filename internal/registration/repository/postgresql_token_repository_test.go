package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/rsvp/internal/registration/domain"
	"github.com/allisson/rsvp/internal/testutil"
)

func createToken(
	t *testing.T,
	repo *PostgreSQLTokenRepository,
	registrationID uuid.UUID,
	tokenHash string,
	expiresAt time.Time,
	revokedAt *time.Time,
) *domain.CapabilityToken {
	t.Helper()

	token := &domain.CapabilityToken{
		ID:             uuid.Must(uuid.NewV7()),
		RegistrationID: registrationID,
		TokenHash:      tokenHash,
		ExpiresAt:      expiresAt,
		RevokedAt:      revokedAt,
		CreatedAt:      time.Now().UTC(),
	}

	err := repo.Create(context.Background(), token)
	require.NoError(t, err)
	return token
}

func TestPostgreSQLTokenRepository_FindValidByHash(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	registrationID := testutil.CreateTestRegistration(t, db, "postgres", "guest@example.com")
	repo := NewPostgreSQLTokenRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	token := createToken(t, repo, registrationID, "valid-hash", now.Add(24*time.Hour), nil)

	found, err := repo.FindValidByHash(ctx, "valid-hash", now)
	require.NoError(t, err)
	assert.Equal(t, token.ID, found.ID)
	assert.Equal(t, registrationID, found.RegistrationID)
}

func TestPostgreSQLTokenRepository_FindValidByHash_UniformNotFound(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	registrationID := testutil.CreateTestRegistration(t, db, "postgres", "guest@example.com")
	repo := NewPostgreSQLTokenRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	revokedAt := now.Add(-time.Hour)

	createToken(t, repo, registrationID, "revoked-hash", now.Add(24*time.Hour), &revokedAt)
	createToken(t, repo, registrationID, "expired-hash", now.Add(-time.Minute), nil)

	// A hash that never existed, a revoked token and an expired token are
	// indistinguishable through this query.
	for _, hash := range []string{"never-issued-hash", "revoked-hash", "expired-hash"} {
		found, err := repo.FindValidByHash(ctx, hash, now)
		assert.Nil(t, found, hash)
		assert.ErrorIs(t, err, domain.ErrManageLinkNotFound, hash)
	}
}

func TestPostgreSQLTokenRepository_FindValidByHash_ExpiryBoundary(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	registrationID := testutil.CreateTestRegistration(t, db, "postgres", "guest@example.com")
	repo := NewPostgreSQLTokenRepository(db)
	ctx := context.Background()

	expiresAt := time.Now().UTC().Add(time.Hour)
	createToken(t, repo, registrationID, "boundary-hash", expiresAt, nil)

	// A token expiring exactly now is already invalid.
	found, err := repo.FindValidByHash(ctx, "boundary-hash", expiresAt)
	assert.Nil(t, found)
	assert.ErrorIs(t, err, domain.ErrManageLinkNotFound)

	found, err = repo.FindValidByHash(ctx, "boundary-hash", expiresAt.Add(-time.Second))
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestPostgreSQLTokenRepository_Revoke(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	registrationID := testutil.CreateTestRegistration(t, db, "postgres", "guest@example.com")
	repo := NewPostgreSQLTokenRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	token := createToken(t, repo, registrationID, "revoke-me", now.Add(24*time.Hour), nil)

	err := repo.Revoke(ctx, token.ID, now)
	require.NoError(t, err)

	found, err := repo.FindValidByHash(ctx, "revoke-me", now)
	assert.Nil(t, found)
	assert.ErrorIs(t, err, domain.ErrManageLinkNotFound)
}

func TestPostgreSQLTokenRepository_Revoke_Monotonic(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	registrationID := testutil.CreateTestRegistration(t, db, "postgres", "guest@example.com")
	repo := NewPostgreSQLTokenRepository(db)
	ctx := context.Background()

	firstRevocation := time.Now().UTC().Add(-time.Hour)
	token := createToken(t, repo, registrationID, "monotonic-hash",
		time.Now().UTC().Add(24*time.Hour), &firstRevocation)

	// Revoking an already revoked token keeps the original timestamp.
	err := repo.Revoke(ctx, token.ID, time.Now().UTC())
	require.NoError(t, err)

	var revokedAt time.Time
	err = db.QueryRowContext(ctx,
		`SELECT revoked_at FROM capability_tokens WHERE id = $1`, token.ID).Scan(&revokedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, firstRevocation, revokedAt, time.Second)
}

func TestPostgreSQLTokenRepository_RevokeAll(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	registrationID := testutil.CreateTestRegistration(t, db, "postgres", "guest@example.com")
	otherID := testutil.CreateTestRegistration(t, db, "postgres", "other@example.com")
	repo := NewPostgreSQLTokenRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	alreadyRevoked := now.Add(-time.Hour)

	createToken(t, repo, registrationID, "hash-1", now.Add(24*time.Hour), nil)
	createToken(t, repo, registrationID, "hash-2", now.Add(24*time.Hour), nil)
	createToken(t, repo, registrationID, "hash-3", now.Add(24*time.Hour), &alreadyRevoked)
	createToken(t, repo, otherID, "other-hash", now.Add(24*time.Hour), nil)

	count, err := repo.RevokeAll(ctx, registrationID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Tokens of other registrations are untouched.
	found, err := repo.FindValidByHash(ctx, "other-hash", now)
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestPostgreSQLTokenRepository_DeleteExpiredAndRevoked(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	registrationID := testutil.CreateTestRegistration(t, db, "postgres", "guest@example.com")
	repo := NewPostgreSQLTokenRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	revokedAt := now.Add(-2 * time.Hour)

	createToken(t, repo, registrationID, "expired-revoked", now.Add(-time.Hour), &revokedAt)
	createToken(t, repo, registrationID, "expired-only", now.Add(-time.Hour), nil)
	createToken(t, repo, registrationID, "revoked-only", now.Add(24*time.Hour), &revokedAt)
	createToken(t, repo, registrationID, "live", now.Add(24*time.Hour), nil)

	count, err := repo.DeleteExpiredAndRevoked(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Repeating the purge with nothing left to delete is a no-op.
	count, err = repo.DeleteExpiredAndRevoked(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	var remaining int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM capability_tokens WHERE registration_id = $1`, registrationID).Scan(&remaining)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)
}

func TestPostgreSQLTokenRepository_CascadeDelete(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	registrationID := testutil.CreateTestRegistration(t, db, "postgres", "guest@example.com")
	repo := NewPostgreSQLTokenRepository(db)
	ctx := context.Background()

	createToken(t, repo, registrationID, "cascade-hash", time.Now().UTC().Add(24*time.Hour), nil)

	// Deleting the registration removes its tokens through the foreign key.
	_, err := db.ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, registrationID)
	require.NoError(t, err)

	var count int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM capability_tokens WHERE registration_id = $1`, registrationID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestPostgreSQLTokenRepository_Create_WithTransaction(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	registrationID := testutil.CreateTestRegistration(t, db, "postgres", "guest@example.com")
	repo := NewPostgreSQLTokenRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO capability_tokens (id, registration_id, token_hash, expires_at, revoked_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.Must(uuid.NewV7()),
		registrationID,
		"tx-hash",
		now.Add(24*time.Hour),
		nil,
		now,
	)
	require.NoError(t, err)

	err = tx.Rollback()
	require.NoError(t, err)

	// The rolled back token is not visible.
	found, err := repo.FindValidByHash(ctx, "tx-hash", now)
	assert.Nil(t, found)
	assert.ErrorIs(t, err, domain.ErrManageLinkNotFound)
}

func TestNewPostgreSQLTokenRepository(t *testing.T) {
	repo := NewPostgreSQLTokenRepository(&sql.DB{})
	assert.NotNil(t, repo)
	assert.IsType(t, &PostgreSQLTokenRepository{}, repo)
}
