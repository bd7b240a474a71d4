package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
)

type Message struct {
	To      []string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// ResendSender sends e-mail through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
	log    *slog.Logger
}

func NewResendSender(apiKey, from string, log *slog.Logger) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		log:    log,
	}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		s.log.Error("resend send failed", "error", err, "to", msg.To, "subject", msg.Subject)
		return "", fmt.Errorf("resend send failed: %w", err)
	}

	s.log.Info("resend sent", "message_id", sent.Id, "subject", msg.Subject)
	return sent.Id, nil
}

// LogSender only logs; used when no Resend API key is configured.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, msg Message) (string, error) {
	id := uuid.NewString()
	s.log.Info("email not sent, no provider configured", "message_id", id, "to", msg.To, "subject", msg.Subject)
	return id, nil
}
