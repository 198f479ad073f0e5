package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/allisson/rsvp/internal/clock"
)

// retentionUseCase implements RetentionUseCase.
type retentionUseCase struct {
	registrationRepo RegistrationRepository
	tokenRepo        TokenRepository
	clock            clock.Clock
	logger           *slog.Logger
}

// PurgeExpiredTokens hard-deletes tokens that are both expired and revoked.
// Tokens that are merely expired are kept as an audit trail until revoked;
// they fail resolution regardless. Repeated invocation with no qualifying rows
// purges zero and is a no-op, not an error.
func (u *retentionUseCase) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	count, err := u.tokenRepo.DeleteExpiredAndRevoked(ctx, u.clock.Now())
	if err != nil {
		return 0, err
	}

	u.logger.Info("purged expired tokens", slog.Int64("count", count))
	return count, nil
}

// PurgeCancelledRegistrations hard-deletes cancelled registrations whose last
// update precedes the cutoff. Confirmed registrations are excluded by the
// query shape itself, not a runtime check.
func (u *retentionUseCase) PurgeCancelledRegistrations(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	count, err := u.registrationRepo.DeleteCancelledBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	u.logger.Info("purged cancelled registrations",
		slog.Int64("count", count),
		slog.Time("cutoff", cutoff),
	)
	return count, nil
}

// NewRetentionUseCase creates a RetentionUseCase with the provided dependencies.
func NewRetentionUseCase(
	registrationRepo RegistrationRepository,
	tokenRepo TokenRepository,
	clk clock.Clock,
	logger *slog.Logger,
) RetentionUseCase {
	return &retentionUseCase{
		registrationRepo: registrationRepo,
		tokenRepo:        tokenRepo,
		clock:            clk,
		logger:           logger,
	}
}
