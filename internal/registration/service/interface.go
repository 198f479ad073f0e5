// Package service provides the token codec and capability resolver used by the
// registration lifecycle.
package service

import (
	"context"

	"github.com/google/uuid"
)

// TokenService generates and hashes capability tokens.
type TokenService interface {
	// GenerateToken creates a new random token. Returns the raw URL-safe token
	// and its SHA-256 hex hash.
	GenerateToken() (rawToken string, tokenHash string, err error)

	// HashToken hashes a raw token using SHA-256. Pure and deterministic, so the
	// store only ever sees hashes.
	HashToken(rawToken string) string
}

// CapabilityResolver maps a raw manage token to the registration it grants
// access to. Every token-based flow goes through this single operation.
type CapabilityResolver interface {
	// Resolve hashes the raw token and looks up a non-revoked, non-expired
	// record. Any failure yields domain.ErrManageLinkNotFound with no
	// externally observable distinction between causes. On success it returns
	// the ID of the resolved token record and the owning registration.
	Resolve(ctx context.Context, rawToken string) (tokenID uuid.UUID, registrationID uuid.UUID, err error)
}
