package usecase

import (
	"context"
	"time"

	"github.com/allisson/rsvp/internal/metrics"
	"github.com/allisson/rsvp/internal/registration/domain"
)

// registrationUseCaseWithMetrics decorates RegistrationUseCase with metrics instrumentation.
type registrationUseCaseWithMetrics struct {
	next    RegistrationUseCase
	metrics metrics.BusinessMetrics
}

// NewRegistrationUseCaseWithMetrics wraps a RegistrationUseCase with metrics recording.
func NewRegistrationUseCaseWithMetrics(
	useCase RegistrationUseCase,
	m metrics.BusinessMetrics,
) RegistrationUseCase {
	return &registrationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the operation counter and duration histogram for one call.
func (r *registrationUseCaseWithMetrics) record(
	ctx context.Context,
	operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "registration", operation, status)
	r.metrics.RecordDuration(ctx, "registration", operation, time.Since(start), status)
}

// Register records metrics for registration creation.
func (r *registrationUseCaseWithMetrics) Register(
	ctx context.Context,
	input *domain.CreateRegistrationInput,
) (*domain.RegisterOutput, error) {
	start := time.Now()
	output, err := r.next.Register(ctx, input)
	r.record(ctx, "register", start, err)
	return output, err
}

// GetByToken records metrics for token-based reads.
func (r *registrationUseCaseWithMetrics) GetByToken(
	ctx context.Context,
	rawToken string,
) (*domain.Registration, error) {
	start := time.Now()
	registration, err := r.next.GetByToken(ctx, rawToken)
	r.record(ctx, "get_by_token", start, err)
	return registration, err
}

// UpdateByToken records metrics for updates with rotation.
func (r *registrationUseCaseWithMetrics) UpdateByToken(
	ctx context.Context,
	rawToken string,
	input *domain.UpdateRegistrationInput,
) (*domain.UpdateOutput, error) {
	start := time.Now()
	output, err := r.next.UpdateByToken(ctx, rawToken, input)
	r.record(ctx, "update_by_token", start, err)
	return output, err
}

// CancelByToken records metrics for cancellations.
func (r *registrationUseCaseWithMetrics) CancelByToken(ctx context.Context, rawToken string) error {
	start := time.Now()
	err := r.next.CancelByToken(ctx, rawToken)
	r.record(ctx, "cancel_by_token", start, err)
	return err
}

// ResendManageLink records metrics for resend requests. The status label never
// reflects the internal branch taken; the wrapped call only errors on
// transport-level failures.
func (r *registrationUseCaseWithMetrics) ResendManageLink(ctx context.Context, email string) error {
	start := time.Now()
	err := r.next.ResendManageLink(ctx, email)
	r.record(ctx, "resend_manage_link", start, err)
	return err
}
