// Package notifier implements manage-link email delivery.
package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/allisson/rsvp/internal/clock"
	outboxdomain "github.com/allisson/rsvp/internal/outbox/domain"
	outboxusecase "github.com/allisson/rsvp/internal/outbox/usecase"
	"github.com/allisson/rsvp/internal/registration/usecase"
)

const manageLinkSubject = "Your registration manage link"

// OutboxNotifier enqueues manage-link emails into the transactional outbox.
// The enqueue shares the caller's transaction, so a rolled-back registration
// never leaks an email.
type OutboxNotifier struct {
	emailRepo outboxusecase.EmailRepository
	clock     clock.Clock
}

// NewOutboxNotifier creates a new OutboxNotifier.
func NewOutboxNotifier(emailRepo outboxusecase.EmailRepository, clk clock.Clock) *OutboxNotifier {
	return &OutboxNotifier{emailRepo: emailRepo, clock: clk}
}

// SendManageLink enqueues a manage-link email for later relay.
func (n *OutboxNotifier) SendManageLink(ctx context.Context, email usecase.ManageLinkEmail) error {
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	now := n.clock.Now()
	message := &outboxdomain.EmailMessage{
		ID:        id,
		Recipient: email.To,
		Subject:   manageLinkSubject,
		Body:      renderManageLinkBody(email),
		Status:    outboxdomain.EmailStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return n.emailRepo.Create(ctx, message)
}

func renderManageLinkBody(email usecase.ManageLinkEmail) string {
	return fmt.Sprintf(
		"Hi %s,\n\n"+
			"Use the link below to view, update or cancel your registration:\n\n"+
			"%s\n\n"+
			"Keep this link private. Anyone with it can manage your registration.\n"+
			"If you lose it, request a new one from the event page.\n",
		email.GuestName, email.ManageURL,
	)
}

// LogNotifier logs manage-link deliveries instead of sending them. Intended
// for local development only; it deliberately omits the manage URL.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SendManageLink logs the delivery.
func (n *LogNotifier) SendManageLink(_ context.Context, email usecase.ManageLinkEmail) error {
	n.logger.Info("manage link email (not sent)",
		slog.String("recipient", email.To),
	)
	return nil
}
