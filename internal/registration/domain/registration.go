// Package domain defines the core registration entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a registration.
type Status string

const (
	// StatusConfirmed is the state of an active registration.
	StatusConfirmed Status = "confirmed"
	// StatusCancelled is terminal: a cancelled registration is never resurrected.
	StatusCancelled Status = "cancelled"
)

// Registration is an event guest registration. Guests manage it exclusively
// through capability tokens; there is no account or password.
type Registration struct {
	ID            uuid.UUID
	GuestName     string
	Email         string
	AdultsCount   int
	ChildrenCount int
	Dietary       string
	Notes         string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateRegistrationInput carries the guest-provided fields for a new registration.
type CreateRegistrationInput struct {
	GuestName     string
	Email         string
	AdultsCount   int
	ChildrenCount int
	Dietary       string
	Notes         string
}

// UpdateRegistrationInput carries the guest-editable fields for an update.
// All fields are replaced; the HTTP layer merges partial requests before
// building this input.
type UpdateRegistrationInput struct {
	GuestName     string
	Email         string
	AdultsCount   int
	ChildrenCount int
	Dietary       string
	Notes         string
}

// RegisterOutput is returned by the create flow. The raw manage token is never
// part of it; the guest receives the manage link by email only.
type RegisterOutput struct {
	RegistrationID uuid.UUID
}

// UpdateOutput is returned by the update flow. The new manage URL appears only
// inside this authenticated success payload.
type UpdateOutput struct {
	Registration *Registration
	ManageURL    string
}
