package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/allisson/rsvp/internal/registration/domain"
)

func storedRegistration() *domain.Registration {
	return &domain.Registration{
		ID:            uuid.Must(uuid.NewV7()),
		GuestName:     "Alice Johnson",
		Email:         "alice@example.com",
		AdultsCount:   2,
		ChildrenCount: 1,
		Dietary:       "vegetarian",
		Notes:         "arriving late",
		Status:        domain.StatusConfirmed,
	}
}

func TestCreateRegistrationRequest_ToInput(t *testing.T) {
	req := CreateRegistrationRequest{
		GuestName:     "Alice Johnson",
		Email:         "alice@example.com",
		AdultsCount:   2,
		ChildrenCount: 1,
		Dietary:       "vegetarian",
		Notes:         "arriving late",
	}

	input := req.ToInput()
	assert.Equal(t, "Alice Johnson", input.GuestName)
	assert.Equal(t, "alice@example.com", input.Email)
	assert.Equal(t, 2, input.AdultsCount)
	assert.Equal(t, 1, input.ChildrenCount)
	assert.Equal(t, "vegetarian", input.Dietary)
	assert.Equal(t, "arriving late", input.Notes)
}

func TestUpdateRegistrationRequest_MergeInto_Partial(t *testing.T) {
	adults := 4
	req := UpdateRegistrationRequest{AdultsCount: &adults}

	input := req.MergeInto(storedRegistration())

	assert.Equal(t, 4, input.AdultsCount)
	// Absent fields keep the stored values.
	assert.Equal(t, "Alice Johnson", input.GuestName)
	assert.Equal(t, "alice@example.com", input.Email)
	assert.Equal(t, 1, input.ChildrenCount)
	assert.Equal(t, "vegetarian", input.Dietary)
	assert.Equal(t, "arriving late", input.Notes)
}

func TestUpdateRegistrationRequest_MergeInto_ClearsOptionalField(t *testing.T) {
	// An explicit empty string clears the field; a missing field keeps it.
	empty := ""
	req := UpdateRegistrationRequest{Dietary: &empty}

	input := req.MergeInto(storedRegistration())

	assert.Equal(t, "", input.Dietary)
	assert.Equal(t, "arriving late", input.Notes)
}

func TestUpdateRegistrationRequest_MergeInto_AllFields(t *testing.T) {
	name := "Bob Smith"
	email := "bob@example.com"
	adults := 1
	children := 0
	dietary := "vegan"
	notes := ""

	req := UpdateRegistrationRequest{
		GuestName:     &name,
		Email:         &email,
		AdultsCount:   &adults,
		ChildrenCount: &children,
		Dietary:       &dietary,
		Notes:         &notes,
	}

	input := req.MergeInto(storedRegistration())

	assert.Equal(t, "Bob Smith", input.GuestName)
	assert.Equal(t, "bob@example.com", input.Email)
	assert.Equal(t, 1, input.AdultsCount)
	assert.Equal(t, 0, input.ChildrenCount)
	assert.Equal(t, "vegan", input.Dietary)
	assert.Equal(t, "", input.Notes)
}
