package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/allisson/rsvp/internal/app"
	"github.com/allisson/rsvp/internal/config"
)

// RunPurgeExpiredTokens deletes manage tokens that are both expired and
// revoked. The purge is idempotent: a run with no qualifying rows deletes
// zero and succeeds.
func RunPurgeExpiredTokens(ctx context.Context) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)

	logger := container.Logger()
	logger.Info("purging expired tokens")

	defer closeContainer(container, logger)

	retentionUseCase, err := container.RetentionUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize retention use case: %w", err)
	}

	count, err := retentionUseCase.PurgeExpiredTokens(ctx)
	if err != nil {
		return fmt.Errorf("failed to purge expired tokens: %w", err)
	}

	fmt.Printf("Deleted %d expired token(s)\n", count)

	logger.Info("purge completed", slog.Int64("count", count))
	return nil
}
