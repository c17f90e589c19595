// Package mailer sends the outbound submission emails. The Sender interface
// separates message assembly from the provider so the relay can be exercised
// in tests without network access.
package mailer

import (
	"context"
	"log/slog"

	"github.com/olivepayment/pos-intake/internal/attachment"
)

// Message is one outbound email with its attachments.
type Message struct {
	From        string
	FromName    string
	To          []string
	Subject     string
	Text        string
	HTML        string
	Attachments []attachment.Attachment
}

// Sender delivers a message through an email provider.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// LogSender logs messages instead of delivering them. Used when the service
// runs without a provider credential in development.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender returns a Sender that only logs.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg *Message) error {
	s.logger.InfoContext(ctx, "email delivery skipped (log-only sender)",
		"to", msg.To,
		"subject", msg.Subject,
		"attachments", len(msg.Attachments),
	)
	return nil
}
