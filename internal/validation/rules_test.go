package validation

import (
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/rsvp/internal/errors"
)

func TestEmail(t *testing.T) {
	valid := []string{
		"guest@example.com",
		"first.last+tag@sub.example.co",
	}
	for _, email := range valid {
		assert.NoError(t, validation.Validate(email, Email), email)
	}

	invalid := []string{
		"not-an-email",
		"@example.com",
		"guest@",
		"guest@example",
		"guest @example.com",
	}
	for _, email := range invalid {
		assert.Error(t, validation.Validate(email, Email), email)
	}
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, validation.Validate("Alice", NotBlank))
	assert.Error(t, validation.Validate("   ", NotBlank))
}

func TestNoWhitespace(t *testing.T) {
	assert.NoError(t, validation.Validate("Alice", NoWhitespace))
	assert.Error(t, validation.Validate(" Alice", NoWhitespace))
	assert.Error(t, validation.Validate("Alice ", NoWhitespace))
}

func TestWrapValidationError(t *testing.T) {
	assert.Nil(t, WrapValidationError(nil))

	err := WrapValidationError(validation.Validate("", NotBlank))
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}
