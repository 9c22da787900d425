package mail

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Sender delivers an email and returns the provider's message id.
// Implementations can be swapped (SendGrid, SES, stub) without changing callers.
type Sender interface {
	Send(ctx context.Context, msg Message) (messageID string, err error)
}

// Message is an email to be sent. The sender identity is configured on the Sender.
type Message struct {
	To      string
	ToName  string
	ReplyTo string
	Subject string
	Text    string // plain text body
	HTML    string // optional HTML body
}

// StubSender logs emails instead of sending them
type StubSender struct{}

// Send logs msg and returns a random message id
func (StubSender) Send(ctx context.Context, msg Message) (string, error) {
	id := "stub-" + uuid.NewString()
	log.Info().Str("to", msg.To).Str("reply_to", msg.ReplyTo).Str("subject", msg.Subject).Str("message_id", id).
		Msg("Stub email sender: would send email")
	return id, nil
}

var _ Sender = StubSender{}
