// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/rsvp/cmd/app/commands"
)

var version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "rsvp",
		Usage:   "Event guest registration service",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server and the email relay",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "purge-expired-tokens",
				Usage: "Delete manage tokens that are both expired and revoked",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunPurgeExpiredTokens(ctx)
				},
			},
			{
				Name:  "purge-cancelled-registrations",
				Usage: "Delete cancelled registrations past the retention period",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "days",
						Aliases: []string{"d"},
						Value:   0,
						Usage:   "Override the retention period in days (0 uses the configured value)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunPurgeCancelledRegistrations(ctx, cmd.Int("days"))
				},
			},
			{
				Name:  "relay-emails",
				Usage: "Drain the email outbox through the SMTP relay",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "once",
						Aliases: []string{"o"},
						Value:   false,
						Usage:   "Process a single batch and exit instead of looping",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunRelayEmails(ctx, cmd.Bool("once"))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
