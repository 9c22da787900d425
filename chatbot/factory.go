package chatbot

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the display format of message timestamps
const TimestampLayout = "3:04 PM"

// IDGenerator returns a new unique message id
type IDGenerator func() string

// UUIDGenerator returns time-ordered UUIDv7 ids, falling back to random
// UUIDv4 if the clock source fails
func UUIDGenerator() IDGenerator {
	return func() string {
		id, err := uuid.NewV7()
		if err != nil {
			return uuid.NewString()
		}
		return id.String()
	}
}

// Sequence returns ids of the form prefix-1, prefix-2, ...
func Sequence(prefix string) IDGenerator {
	var n uint64
	return func() string {
		return prefix + "-" + strconv.FormatUint(atomic.AddUint64(&n, 1), 10)
	}
}

// Factory builds well-formed bot and user messages
type Factory struct {
	profile  Profile
	ids      IDGenerator
	now      func() time.Time
	location *time.Location
}

// FactoryOption configures a Factory
type FactoryOption func(*Factory)

// WithProfile sets the owner profile used in canned replies
func WithProfile(p Profile) FactoryOption {
	return func(f *Factory) { f.profile = p }
}

// WithIDGenerator sets the message id source
func WithIDGenerator(ids IDGenerator) FactoryOption {
	return func(f *Factory) { f.ids = ids }
}

// WithClock sets the wall clock used for timestamps
func WithClock(now func() time.Time) FactoryOption {
	return func(f *Factory) { f.now = now }
}

// WithLocation sets the time zone timestamps are rendered in
func WithLocation(loc *time.Location) FactoryOption {
	return func(f *Factory) { f.location = loc }
}

// NewFactory creates a new message factory
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		profile:  DefaultProfile,
		ids:      UUIDGenerator(),
		now:      time.Now,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Profile returns the owner profile of the factory
func (f *Factory) Profile() Profile {
	return f.profile
}

func (f *Factory) timestamp() string {
	return f.now().In(f.location).Format(TimestampLayout)
}

func (f *Factory) bot(content string, buttons ...string) Message {
	m := Message{
		ID:        f.ids(),
		Content:   content,
		IsBot:     true,
		Timestamp: f.timestamp(),
	}
	if len(buttons) > 0 {
		m.Buttons = buttons
	}
	return m
}

// InitialMessage returns the greeting shown at the root menu
func (f *Factory) InitialMessage() Message {
	return f.bot(greetingText(f.profile))
}

// UserMessage returns a visitor message. Callers trim content; empty content
// is not rejected here.
func (f *Factory) UserMessage(content string) Message {
	return Message{
		ID:        f.ids(),
		Content:   content,
		IsBot:     false,
		Timestamp: f.timestamp(),
	}
}

// BotTextMessage returns a bot message with optional action buttons
func (f *Factory) BotTextMessage(content string, buttons ...string) Message {
	return f.bot(content, buttons...)
}

// FullWidthMessage returns the placeholder a section's content panel mounts in
func (f *Factory) FullWidthMessage(section Section) Message {
	m := f.bot("")
	m.IsFullWidth = true
	m.SelectedSection = section
	return m
}

// AboutPrompt returns the About menu with one button per topic
func (f *Factory) AboutPrompt() Message {
	return f.bot(aboutPromptText, AboutTopics...)
}

// AboutResponse returns the canned reply for topic. Unknown topics get a
// generic fallback.
func (f *Factory) AboutResponse(topic string) Message {
	if topic == TopicSocial {
		return f.bot(aboutText(f.profile, topic), ButtonLinkedIn, ButtonGitHub, ButtonEmail, ButtonReturn)
	}
	return f.bot(aboutText(f.profile, topic), ButtonReturn)
}

// ContactEmailPrompt asks the visitor for their email address
func (f *Factory) ContactEmailPrompt() Message {
	return f.bot(emailPromptText, ButtonReturn)
}

// ContactMessagePrompt asks the visitor for the message body
func (f *Factory) ContactMessagePrompt() Message {
	return f.bot(messagePromptText, ButtonReturn)
}

// EmailValidationError re-prompts after a malformed email address
func (f *Factory) EmailValidationError() Message {
	return f.bot(emailInvalidText, ButtonReturn)
}

// ContactConfirmation asks the visitor to confirm the staged submission.
// Both values are interpolated as-is; the log is rendered as text.
func (f *Factory) ContactConfirmation(email, message string) Message {
	return f.bot(fmt.Sprintf(confirmationTemplate, email, message))
}

// EmailSuccessMessage reports a delivered submission
func (f *Factory) EmailSuccessMessage() Message {
	return f.bot(emailSentText, ButtonReturn)
}

// EmailErrorMessage reports a failed submission and names the fallback address
func (f *Factory) EmailErrorMessage() Message {
	return f.bot(emailFailedText(f.profile), ButtonReturn)
}
