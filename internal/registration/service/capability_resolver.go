package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/rsvp/internal/clock"
	"github.com/allisson/rsvp/internal/registration/domain"
)

// TokenLookup is the slice of the token store the resolver consumes.
type TokenLookup interface {
	// FindValidByHash returns the most recently created token record matching
	// the hash that is neither revoked nor expired at the given instant.
	// Returns domain.ErrManageLinkNotFound when no such record exists.
	FindValidByHash(ctx context.Context, tokenHash string, now time.Time) (*domain.CapabilityToken, error)
}

// capabilityResolver implements CapabilityResolver.
type capabilityResolver struct {
	tokenRepo    TokenLookup
	tokenService TokenService
	clock        clock.Clock
}

// Resolve hashes the raw token and fetches a matching record that is not
// revoked and not expired. Absent, revoked and expired all collapse into
// domain.ErrManageLinkNotFound; the true cause is never surfaced here so an
// attacker cannot learn token state by probing. Unexpected repository errors
// propagate as-is for the server-side error path.
func (r *capabilityResolver) Resolve(
	ctx context.Context,
	rawToken string,
) (uuid.UUID, uuid.UUID, error) {
	tokenHash := r.tokenService.HashToken(rawToken)

	token, err := r.tokenRepo.FindValidByHash(ctx, tokenHash, r.clock.Now())
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	return token.ID, token.RegistrationID, nil
}

// NewCapabilityResolver creates a CapabilityResolver backed by the given token
// store, token service and clock.
func NewCapabilityResolver(
	tokenRepo TokenLookup,
	tokenService TokenService,
	clk clock.Clock,
) CapabilityResolver {
	return &capabilityResolver{
		tokenRepo:    tokenRepo,
		tokenService: tokenService,
		clock:        clk,
	}
}
