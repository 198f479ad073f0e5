package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/allisson/rsvp/internal/app"
	"github.com/allisson/rsvp/internal/config"
)

// RunRelayEmails drains the email outbox through the SMTP relay. With once
// set it processes a single batch and exits; otherwise it loops until
// SIGINT/SIGTERM. Concurrent relays are safe: pending rows are locked with
// SKIP LOCKED.
func RunRelayEmails(ctx context.Context, once bool) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)

	logger := container.Logger()
	logger.Info("starting email relay", slog.Bool("once", once))

	defer closeContainer(container, logger)

	outboxUseCase, err := container.OutboxUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize outbox use case: %w", err)
	}

	if once {
		if err := outboxUseCase.ProcessPending(ctx); err != nil {
			return fmt.Errorf("failed to process pending emails: %w", err)
		}
		logger.Info("email relay batch completed")
		return nil
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := outboxUseCase.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("email relay error: %w", err)
	}

	return nil
}
