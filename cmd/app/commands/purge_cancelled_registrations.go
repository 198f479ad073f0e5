package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/allisson/rsvp/internal/app"
	"github.com/allisson/rsvp/internal/config"
)

// RunPurgeCancelledRegistrations deletes cancelled registrations whose last
// update is older than the retention period. A positive days flag overrides
// the configured period; zero uses the default.
func RunPurgeCancelledRegistrations(ctx context.Context, days int) error {
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	cfg := config.Load()

	retention := cfg.TokenPurgeCancelledAfter
	if days > 0 {
		retention = time.Duration(days) * 24 * time.Hour
	}

	container := app.NewContainer(cfg)

	logger := container.Logger()
	logger.Info("purging cancelled registrations",
		slog.Duration("retention", retention),
	)

	defer closeContainer(container, logger)

	retentionUseCase, err := container.RetentionUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize retention use case: %w", err)
	}

	cutoff := container.Clock().Now().Add(-retention)
	count, err := retentionUseCase.PurgeCancelledRegistrations(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to purge cancelled registrations: %w", err)
	}

	fmt.Printf("Deleted %d cancelled registration(s)\n", count)

	logger.Info("purge completed",
		slog.Int64("count", count),
		slog.Time("cutoff", cutoff),
	)
	return nil
}
