// Package domain defines the email outbox entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus represents the delivery status of an outbox email.
type EmailStatus string

const (
	EmailStatusPending   EmailStatus = "pending"
	EmailStatusProcessed EmailStatus = "processed"
	EmailStatusFailed    EmailStatus = "failed"
)

// EmailMessage is a queued outbound email. The manage URL inside the body is
// the only place a raw capability token ever rests, and the row is deleted
// with the registration by the retention purge cascade.
type EmailMessage struct {
	ID          uuid.UUID
	Recipient   string
	Subject     string
	Body        string
	Status      EmailStatus
	Retries     int
	LastError   *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
