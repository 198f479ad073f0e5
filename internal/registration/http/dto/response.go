package dto

import (
	"time"

	"github.com/allisson/rsvp/internal/registration/domain"
)

// RegistrationResponse represents a registration in API responses.
type RegistrationResponse struct {
	ID            string    `json:"id"`
	GuestName     string    `json:"guest_name"`
	Email         string    `json:"email"`
	AdultsCount   int       `json:"adults_count"`
	ChildrenCount int       `json:"children_count"`
	Dietary       string    `json:"dietary,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateRegistrationResponse is returned by the create flow. The manage link is
// delivered by email only and never appears here.
type CreateRegistrationResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// UpdateRegistrationResponse carries the updated registration and the rotated
// manage URL. This is the only API payload a manage URL ever appears in.
type UpdateRegistrationResponse struct {
	Registration RegistrationResponse `json:"registration"`
	ManageURL    string               `json:"manage_url"`
}

// ResendManageLinkResponse is the uniform resend acknowledgement.
type ResendManageLinkResponse struct {
	Message string `json:"message"`
}

// ListRegistrationsResponse represents a paginated list of registrations.
type ListRegistrationsResponse struct {
	Data []RegistrationResponse `json:"data"`
}

// MapRegistrationToResponse converts a domain registration to a response.
func MapRegistrationToResponse(registration *domain.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:            registration.ID.String(),
		GuestName:     registration.GuestName,
		Email:         registration.Email,
		AdultsCount:   registration.AdultsCount,
		ChildrenCount: registration.ChildrenCount,
		Dietary:       registration.Dietary,
		Notes:         registration.Notes,
		Status:        string(registration.Status),
		CreatedAt:     registration.CreatedAt,
		UpdatedAt:     registration.UpdatedAt,
	}
}

// MapRegistrationsToListResponse converts domain registrations to a list response.
func MapRegistrationsToListResponse(registrations []*domain.Registration) ListRegistrationsResponse {
	data := make([]RegistrationResponse, 0, len(registrations))
	for _, registration := range registrations {
		data = append(data, MapRegistrationToResponse(registration))
	}

	return ListRegistrationsResponse{Data: data}
}
