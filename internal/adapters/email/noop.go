package email

import (
	"context"
	"log/slog"
)

// NoopSender logs sends without delivering anything. Used in
// development when no Resend key is configured.
type NoopSender struct{}

func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

func (s *NoopSender) Send(_ context.Context, msg Message) error {
	slog.Info("email_skipped", "to", msg.To, "subject", msg.Subject)
	return nil
}
