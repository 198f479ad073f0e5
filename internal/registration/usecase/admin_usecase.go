package usecase

import (
	"context"

	"github.com/allisson/rsvp/internal/registration/domain"
)

// adminUseCase implements AdminUseCase.
type adminUseCase struct {
	registrationRepo RegistrationRepository
}

// ListRegistrations returns a page of registrations, newest first.
func (u *adminUseCase) ListRegistrations(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Registration, error) {
	return u.registrationRepo.List(ctx, offset, limit)
}

// NewAdminUseCase creates an AdminUseCase with the provided repository.
func NewAdminUseCase(registrationRepo RegistrationRepository) AdminUseCase {
	return &adminUseCase{registrationRepo: registrationRepo}
}
