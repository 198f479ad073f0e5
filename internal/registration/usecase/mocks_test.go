package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/rsvp/internal/registration/domain"
)

// MockRegistrationRepository is a mock implementation of RegistrationRepository.
type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) Create(ctx context.Context, registration *domain.Registration) error {
	args := m.Called(ctx, registration)
	return args.Error(0)
}

func (m *MockRegistrationRepository) Update(ctx context.Context, registration *domain.Registration) error {
	args := m.Called(ctx, registration)
	return args.Error(0)
}

func (m *MockRegistrationRepository) Get(ctx context.Context, registrationID uuid.UUID) (*domain.Registration, error) {
	args := m.Called(ctx, registrationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) GetByEmail(ctx context.Context, email string) (*domain.Registration, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) List(ctx context.Context, offset, limit int) ([]*domain.Registration, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) DeleteCancelledBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockTokenRepository is a mock implementation of TokenRepository.
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Create(ctx context.Context, token *domain.CapabilityToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) FindValidByHash(
	ctx context.Context,
	tokenHash string,
	now time.Time,
) (*domain.CapabilityToken, error) {
	args := m.Called(ctx, tokenHash, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CapabilityToken), args.Error(1)
}

func (m *MockTokenRepository) Revoke(ctx context.Context, tokenID uuid.UUID, now time.Time) error {
	args := m.Called(ctx, tokenID, now)
	return args.Error(0)
}

func (m *MockTokenRepository) RevokeAll(
	ctx context.Context,
	registrationID uuid.UUID,
	now time.Time,
) (int64, error) {
	args := m.Called(ctx, registrationID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTokenRepository) DeleteExpiredAndRevoked(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockCapabilityResolver is a mock implementation of service.CapabilityResolver.
type MockCapabilityResolver struct {
	mock.Mock
}

func (m *MockCapabilityResolver) Resolve(
	ctx context.Context,
	rawToken string,
) (uuid.UUID, uuid.UUID, error) {
	args := m.Called(ctx, rawToken)
	return args.Get(0).(uuid.UUID), args.Get(1).(uuid.UUID), args.Error(2)
}

// MockTokenService is a mock implementation of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateToken() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) HashToken(rawToken string) string {
	args := m.Called(rawToken)
	return args.String(0)
}

// MockTxManager is a mock implementation of TxManager. Unless an error is
// configured the callback runs, so the logic inside the transaction is tested.
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// MockNotifier is a mock implementation of Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendManageLink(ctx context.Context, email ManageLinkEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
