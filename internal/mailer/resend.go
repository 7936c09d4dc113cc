package mailer

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers messages through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	log.Printf("[MAIL] [INFO] resend accepted message id=%s to=%s", sent.Id, msg.To)
	return nil
}
