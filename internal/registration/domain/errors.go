package domain

import (
	apperrors "github.com/allisson/rsvp/internal/errors"
)

var (
	// ErrManageLinkNotFound is the single outcome for every token resolution
	// failure. A hash that never existed, a revoked token and an expired token
	// must be indistinguishable to the caller; no code path may special-case
	// them in any externally observable way.
	ErrManageLinkNotFound = apperrors.Wrap(apperrors.ErrNotFound, "manage link not found")

	// ErrRegistrationNotFound indicates the registration row does not exist.
	ErrRegistrationNotFound = apperrors.Wrap(apperrors.ErrNotFound, "registration not found")
)
