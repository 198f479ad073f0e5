package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/allisson/rsvp/internal/outbox/domain"
)

// SMTPSender relays outbox emails through a plain SMTP endpoint.
type SMTPSender struct {
	addr string
	from string
}

// NewSMTPSender creates a new SMTPSender. addr is host:port.
func NewSMTPSender(addr, from string) *SMTPSender {
	return &SMTPSender{addr: addr, from: from}
}

// Send delivers a single email.
func (s *SMTPSender) Send(_ context.Context, email *domain.EmailMessage) error {
	msg := buildMessage(s.from, email)
	if err := smtp.SendMail(s.addr, nil, s.from, []string{email.Recipient}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", email.Recipient, err)
	}
	return nil
}

func buildMessage(from string, email *domain.EmailMessage) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", email.Recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", email.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(email.Body, "\n", "\r\n"))
	return []byte(b.String())
}
