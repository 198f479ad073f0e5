// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"github.com/allisson/rsvp/internal/registration/domain"
)

// CreateRegistrationRequest contains the guest-provided fields for a new registration.
type CreateRegistrationRequest struct {
	GuestName     string `json:"guest_name"`
	Email         string `json:"email"`
	AdultsCount   int    `json:"adults_count"`
	ChildrenCount int    `json:"children_count"`
	Dietary       string `json:"dietary"`
	Notes         string `json:"notes"`
}

// ToInput converts the request to a domain input.
func (r *CreateRegistrationRequest) ToInput() *domain.CreateRegistrationInput {
	return &domain.CreateRegistrationInput{
		GuestName:     r.GuestName,
		Email:         r.Email,
		AdultsCount:   r.AdultsCount,
		ChildrenCount: r.ChildrenCount,
		Dietary:       r.Dietary,
		Notes:         r.Notes,
	}
}

// UpdateRegistrationRequest contains the guest-editable fields for an update.
// Absent fields keep their current value; the handler merges the request over
// the stored registration before validation.
type UpdateRegistrationRequest struct {
	GuestName     *string `json:"guest_name"`
	Email         *string `json:"email"`
	AdultsCount   *int    `json:"adults_count"`
	ChildrenCount *int    `json:"children_count"`
	Dietary       *string `json:"dietary"`
	Notes         *string `json:"notes"`
}

// MergeInto builds a full update input from the stored registration with the
// request fields applied on top.
func (r *UpdateRegistrationRequest) MergeInto(current *domain.Registration) *domain.UpdateRegistrationInput {
	input := &domain.UpdateRegistrationInput{
		GuestName:     current.GuestName,
		Email:         current.Email,
		AdultsCount:   current.AdultsCount,
		ChildrenCount: current.ChildrenCount,
		Dietary:       current.Dietary,
		Notes:         current.Notes,
	}

	if r.GuestName != nil {
		input.GuestName = *r.GuestName
	}
	if r.Email != nil {
		input.Email = *r.Email
	}
	if r.AdultsCount != nil {
		input.AdultsCount = *r.AdultsCount
	}
	if r.ChildrenCount != nil {
		input.ChildrenCount = *r.ChildrenCount
	}
	if r.Dietary != nil {
		input.Dietary = *r.Dietary
	}
	if r.Notes != nil {
		input.Notes = *r.Notes
	}

	return input
}

// ResendManageLinkRequest contains the email for a manage-link resend.
type ResendManageLinkRequest struct {
	Email string `json:"email"`
}
