package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/rsvp/internal/registration/domain"
)

// MockRegistrationUseCase is a mock implementation of usecase.RegistrationUseCase.
type MockRegistrationUseCase struct {
	mock.Mock
}

func (m *MockRegistrationUseCase) Register(
	ctx context.Context,
	input *domain.CreateRegistrationInput,
) (*domain.RegisterOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegisterOutput), args.Error(1)
}

func (m *MockRegistrationUseCase) GetByToken(
	ctx context.Context,
	rawToken string,
) (*domain.Registration, error) {
	args := m.Called(ctx, rawToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}

func (m *MockRegistrationUseCase) UpdateByToken(
	ctx context.Context,
	rawToken string,
	input *domain.UpdateRegistrationInput,
) (*domain.UpdateOutput, error) {
	args := m.Called(ctx, rawToken, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UpdateOutput), args.Error(1)
}

func (m *MockRegistrationUseCase) CancelByToken(ctx context.Context, rawToken string) error {
	args := m.Called(ctx, rawToken)
	return args.Error(0)
}

func (m *MockRegistrationUseCase) ResendManageLink(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockAdminUseCase is a mock implementation of usecase.AdminUseCase.
type MockAdminUseCase struct {
	mock.Mock
}

func (m *MockAdminUseCase) ListRegistrations(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Registration, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Registration), args.Error(1)
}
