package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendGridClient is the part of *sendgrid.Client used by SendGridSender
type sendGridClient interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
}

// SendGridConfig holds configuration for SendGrid
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// SendGridSender sends emails via the SendGrid API
type SendGridSender struct {
	client    sendGridClient
	fromEmail string
	fromName  string
}

// NewSendGridSender creates a SendGrid sender, or returns an error if the API key is missing
func NewSendGridSender(cfg SendGridConfig) (*SendGridSender, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("sendgrid API key is required")
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}, nil
}

// Send sends msg and returns the X-Message-Id assigned by SendGrid
func (s *SendGridSender) Send(ctx context.Context, msg Message) (string, error) {
	from := sgmail.NewEmail(s.fromName, s.fromEmail)
	to := sgmail.NewEmail(msg.ToName, msg.To)

	html := msg.HTML
	if html == "" {
		html = msg.Text
	}
	message := sgmail.NewSingleEmail(from, msg.Subject, to, msg.Text, html)
	if msg.ReplyTo != "" {
		message.SetReplyTo(sgmail.NewEmail("", msg.ReplyTo))
	}

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		log.Error().Err(err).Str("to", msg.To).Msg("SendGrid send failed")
		return "", fmt.Errorf("sendgrid send failed: %w", err)
	}

	if response.StatusCode >= 400 {
		log.Error().Int("status", response.StatusCode).Str("body", response.Body).Str("to", msg.To).Msg("SendGrid returned error status")
		return "", fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	id := ""
	if ids := response.Headers["X-Message-Id"]; len(ids) > 0 {
		id = ids[0]
	}

	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Int("status", response.StatusCode).Str("message_id", id).Msg("Email sent via SendGrid")
	return id, nil
}

var _ Sender = (*SendGridSender)(nil)
