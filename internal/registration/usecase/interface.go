// Package usecase defines business logic interfaces for the registration lifecycle.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/rsvp/internal/registration/domain"
)

// RegistrationRepository defines persistence operations for registrations.
// Implementations must support transaction-aware operations via context propagation.
type RegistrationRepository interface {
	// Create stores a new registration.
	Create(ctx context.Context, registration *domain.Registration) error

	// Update modifies an existing registration.
	Update(ctx context.Context, registration *domain.Registration) error

	// Get retrieves a registration by ID. Returns ErrRegistrationNotFound if not found.
	Get(ctx context.Context, registrationID uuid.UUID) (*domain.Registration, error)

	// GetByEmail retrieves a registration by guest email.
	// Returns ErrRegistrationNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*domain.Registration, error)

	// List returns a page of registrations, newest first.
	List(ctx context.Context, offset, limit int) ([]*domain.Registration, error)

	// DeleteCancelledBefore hard-deletes cancelled registrations whose last
	// update precedes the cutoff. The predicate itself only ever matches
	// cancelled rows; confirmed registrations are excluded by query shape.
	DeleteCancelledBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// TokenRepository defines persistence operations for capability tokens.
// Implementations must support transaction-aware operations via context propagation.
type TokenRepository interface {
	// Create stores a new capability token record.
	Create(ctx context.Context, token *domain.CapabilityToken) error

	// FindValidByHash returns the most recently created token matching the hash
	// that is neither revoked nor expired at the given instant.
	// Returns ErrManageLinkNotFound when no such record exists.
	FindValidByHash(ctx context.Context, tokenHash string, now time.Time) (*domain.CapabilityToken, error)

	// Revoke marks a single token revoked at the given instant.
	Revoke(ctx context.Context, tokenID uuid.UUID, now time.Time) error

	// RevokeAll revokes every non-revoked token of a registration and returns
	// the number of tokens revoked.
	RevokeAll(ctx context.Context, registrationID uuid.UUID, now time.Time) (int64, error)

	// DeleteExpiredAndRevoked hard-deletes tokens that are both expired and
	// revoked. Tokens that are only expired keep their audit trail.
	DeleteExpiredAndRevoked(ctx context.Context, now time.Time) (int64, error)
}

// ManageLinkEmail carries the fields of an outbound manage-link email.
type ManageLinkEmail struct {
	To        string
	GuestName string
	ManageURL string
}

// Notifier delivers manage-link emails. Implementations must never log or
// persist the raw token beyond the manage URL they were handed.
type Notifier interface {
	SendManageLink(ctx context.Context, email ManageLinkEmail) error
}

// RegistrationUseCase defines the guest-facing lifecycle operations. All
// access is either anonymous (create, resend) or capability-token based; no
// operation ever distinguishes why a token failed to resolve.
type RegistrationUseCase interface {
	// Register validates guest input, persists a confirmed registration, issues
	// the first capability token and emails the manage link. The raw token is
	// never returned; only the registration ID is.
	Register(ctx context.Context, input *domain.CreateRegistrationInput) (*domain.RegisterOutput, error)

	// GetByToken resolves the raw token and returns the owning registration.
	GetByToken(ctx context.Context, rawToken string) (*domain.Registration, error)

	// UpdateByToken resolves the token, applies the update and rotates the
	// token: the resolved token is revoked and a fresh one issued. The new
	// manage URL is returned only inside this authenticated success payload.
	UpdateByToken(
		ctx context.Context,
		rawToken string,
		input *domain.UpdateRegistrationInput,
	) (*domain.UpdateOutput, error)

	// CancelByToken resolves the token, transitions the registration to
	// cancelled and revokes every token ever issued for it.
	CancelByToken(ctx context.Context, rawToken string) error

	// ResendManageLink looks up the registration by email. Unknown and
	// cancelled emails cause no side effects; a confirmed one gets all tokens
	// revoked, one new token issued and an email enqueued. The outcome is
	// indistinguishable across branches and the call is padded to a minimum
	// wall-clock duration.
	ResendManageLink(ctx context.Context, email string) error
}

// AdminUseCase defines the read-only admin surface. Authentication for it is
// delegated to the API-key middleware; this layer only pages through data.
type AdminUseCase interface {
	// ListRegistrations returns a page of registrations, newest first.
	ListRegistrations(ctx context.Context, offset, limit int) ([]*domain.Registration, error)
}

// RetentionUseCase defines the idempotent data retention purges. Triggered
// only from the CLI, never on the request path.
type RetentionUseCase interface {
	// PurgeExpiredTokens deletes tokens that are both expired and revoked.
	PurgeExpiredTokens(ctx context.Context) (int64, error)

	// PurgeCancelledRegistrations deletes cancelled registrations whose last
	// update precedes the cutoff.
	PurgeCancelledRegistrations(ctx context.Context, cutoff time.Time) (int64, error)
}
