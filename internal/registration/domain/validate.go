package domain

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/rsvp/internal/validation"
)

// Validate checks the guest-provided fields against domain constraints.
func (i *CreateRegistrationInput) Validate() error {
	return validateGuestFields(
		&i.GuestName, &i.Email, &i.AdultsCount, &i.ChildrenCount, &i.Dietary, &i.Notes,
	)
}

// Validate checks the guest-editable fields against domain constraints.
func (i *UpdateRegistrationInput) Validate() error {
	return validateGuestFields(
		&i.GuestName, &i.Email, &i.AdultsCount, &i.ChildrenCount, &i.Dietary, &i.Notes,
	)
}

// validateGuestFields holds the single set of constraints shared by create and
// update: both flows accept exactly the guest-editable field set.
func validateGuestFields(
	guestName *string,
	email *string,
	adultsCount *int,
	childrenCount *int,
	dietary *string,
	notes *string,
) error {
	return validation.Errors{
		"guest_name": validation.Validate(*guestName,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		"email": validation.Validate(*email,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Email,
			validation.Length(3, 255),
		),
		"adults_count": validation.Validate(*adultsCount,
			validation.Required,
			validation.Min(1),
			validation.Max(10),
		),
		"children_count": validation.Validate(*childrenCount,
			validation.Min(0),
			validation.Max(10),
		),
		"dietary": validation.Validate(*dietary,
			validation.Length(0, 500),
		),
		"notes": validation.Validate(*notes,
			validation.Length(0, 1000),
		),
	}.Filter()
}
