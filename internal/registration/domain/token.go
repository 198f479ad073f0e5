package domain

import (
	"time"

	"github.com/google/uuid"
)

// CapabilityToken is the persisted record of a manage link. Only the SHA-256
// hash of the raw token is ever stored; the raw value exists transiently
// between generation and the outbound email, or between an inbound request
// and hashing.
type CapabilityToken struct {
	ID             uuid.UUID
	RegistrationID uuid.UUID
	TokenHash      string
	ExpiresAt      time.Time
	RevokedAt      *time.Time
	CreatedAt      time.Time
}
