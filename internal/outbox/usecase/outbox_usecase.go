// Package usecase implements the email outbox relay logic.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/allisson/rsvp/internal/clock"
	"github.com/allisson/rsvp/internal/database"
	"github.com/allisson/rsvp/internal/outbox/domain"
)

// Config holds outbox relay configuration.
type Config struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// EmailRepository defines email outbox repository operations.
type EmailRepository interface {
	Create(ctx context.Context, email *domain.EmailMessage) error
	GetPending(ctx context.Context, limit int) ([]*domain.EmailMessage, error)
	Update(ctx context.Context, email *domain.EmailMessage) error
}

// EmailSender delivers a single email to the upstream relay.
type EmailSender interface {
	Send(ctx context.Context, email *domain.EmailMessage) error
}

// UseCase defines the outbox relay operations.
type UseCase interface {
	Start(ctx context.Context) error
	ProcessPending(ctx context.Context) error
}

// OutboxUseCase drains pending outbox emails through an EmailSender.
type OutboxUseCase struct {
	config    Config
	txManager database.TxManager
	emailRepo EmailRepository
	sender    EmailSender
	clock     clock.Clock
	logger    *slog.Logger
}

// NewOutboxUseCase creates a new OutboxUseCase.
func NewOutboxUseCase(
	config Config,
	txManager database.TxManager,
	emailRepo EmailRepository,
	sender EmailSender,
	clk clock.Clock,
	logger *slog.Logger,
) *OutboxUseCase {
	return &OutboxUseCase{
		config:    config,
		txManager: txManager,
		emailRepo: emailRepo,
		sender:    sender,
		clock:     clk,
		logger:    logger,
	}
}

// Start runs the relay loop until the context is cancelled.
func (uc *OutboxUseCase) Start(ctx context.Context) error {
	if uc.logger != nil {
		uc.logger.Info("starting email outbox relay",
			slog.Duration("interval", uc.config.Interval),
			slog.Int("batch_size", uc.config.BatchSize),
		)
	}

	ticker := time.NewTicker(uc.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if uc.logger != nil {
				uc.logger.Info("stopping email outbox relay")
			}
			return ctx.Err()
		case <-ticker.C:
			if err := uc.ProcessPending(ctx); err != nil {
				if uc.logger != nil {
					uc.logger.Error("failed to process pending emails", slog.Any("error", err))
				}
			}
		}
	}
}

// ProcessPending sends one batch of pending emails inside a transaction. A
// send failure marks the row for retry and never aborts the batch.
func (uc *OutboxUseCase) ProcessPending(ctx context.Context) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		emails, err := uc.emailRepo.GetPending(ctx, uc.config.BatchSize)
		if err != nil {
			return err
		}

		if len(emails) == 0 {
			return nil
		}

		if uc.logger != nil {
			uc.logger.Info("relaying emails", slog.Int("count", len(emails)))
		}

		for _, email := range emails {
			if err := uc.sender.Send(ctx, email); err != nil {
				if uc.logger != nil {
					uc.logger.Error("failed to send email",
						slog.String("email_id", email.ID.String()),
						slog.Any("error", err),
					)
				}

				email.Retries++
				errorMsg := err.Error()
				email.LastError = &errorMsg

				if email.Retries >= uc.config.MaxRetries {
					email.Status = domain.EmailStatusFailed
				}

				if err := uc.emailRepo.Update(ctx, email); err != nil {
					return err
				}
				continue
			}

			now := uc.clock.Now()
			email.Status = domain.EmailStatusProcessed
			email.ProcessedAt = &now

			if err := uc.emailRepo.Update(ctx, email); err != nil {
				return err
			}
		}

		return nil
	})
}
