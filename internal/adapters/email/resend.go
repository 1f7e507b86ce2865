package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers notifications via the Resend API. The from
// address is fixed at construction; every message goes out under it.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender for the given API key and from
// address, e.g. "Campus Events <noreply@campusevents.edu>".
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	slog.Info("email_sent", "message_id", sent.Id, "to", msg.To, "subject", msg.Subject)
	return nil
}
