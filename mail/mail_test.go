package mail

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/sendgrid/rest"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSendGrid struct {
	sent     *sgmail.SGMailV3
	response *rest.Response
	err      error
}

func (f *fakeSendGrid) SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error) {
	f.sent = email
	return f.response, f.err
}

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("ses-123")}, nil
}

type recordingSender struct {
	msg Message
}

func (r *recordingSender) Send(ctx context.Context, msg Message) (string, error) {
	r.msg = msg
	return "rec-1", nil
}

func testMessage() Message {
	return Message{
		To:      "owner@example.com",
		ReplyTo: "visitor@example.com",
		Subject: ContactSubject,
		Text:    "hello",
		HTML:    "<p>hello</p>",
	}
}

func TestNewSendGridSenderRequiresKey(t *testing.T) {
	_, err := NewSendGridSender(SendGridConfig{})
	assert.Error(t, err)

	s, err := NewSendGridSender(SendGridConfig{APIKey: "key", FromEmail: "noreply@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestSendGridSender(t *testing.T) {
	fake := &fakeSendGrid{response: &rest.Response{
		StatusCode: http.StatusAccepted,
		Headers:    map[string][]string{"X-Message-Id": {"sg-42"}},
	}}
	s := &SendGridSender{client: fake, fromEmail: "noreply@example.com", fromName: "Portfolio"}

	id, err := s.Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.Equal(t, "sg-42", id)

	require.NotNil(t, fake.sent)
	assert.Equal(t, "noreply@example.com", fake.sent.From.Address)
	assert.Equal(t, "Portfolio", fake.sent.From.Name)
	assert.Equal(t, ContactSubject, fake.sent.Subject)
	require.NotNil(t, fake.sent.ReplyTo)
	assert.Equal(t, "visitor@example.com", fake.sent.ReplyTo.Address)
	require.Len(t, fake.sent.Personalizations, 1)
	assert.Equal(t, "owner@example.com", fake.sent.Personalizations[0].To[0].Address)
	require.Len(t, fake.sent.Content, 2)
	assert.Equal(t, "text/plain", fake.sent.Content[0].Type)
	assert.Equal(t, "text/html", fake.sent.Content[1].Type)
}

func TestSendGridSenderFailures(t *testing.T) {
	s := &SendGridSender{client: &fakeSendGrid{response: &rest.Response{StatusCode: http.StatusUnauthorized, Body: "bad key"}}}
	_, err := s.Send(context.Background(), testMessage())
	assert.EqualError(t, err, "sendgrid returned status 401")

	s = &SendGridSender{client: &fakeSendGrid{err: errors.New("dial tcp")}}
	_, err = s.Send(context.Background(), testMessage())
	assert.ErrorContains(t, err, "dial tcp")
}

func TestSESSender(t *testing.T) {
	fake := &fakeSES{}
	s := &SESSender{client: fake, fromEmail: "noreply@example.com", fromName: "Portfolio"}

	id, err := s.Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.Equal(t, "ses-123", id)

	in := fake.input
	require.NotNil(t, in)
	assert.Equal(t, "Portfolio <noreply@example.com>", aws.ToString(in.FromEmailAddress))
	assert.Equal(t, []string{"owner@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, []string{"visitor@example.com"}, in.ReplyToAddresses)
	assert.Equal(t, ContactSubject, aws.ToString(in.Content.Simple.Subject.Data))
	assert.Equal(t, "UTF-8", aws.ToString(in.Content.Simple.Subject.Charset))
	assert.Equal(t, "hello", aws.ToString(in.Content.Simple.Body.Text.Data))
	assert.Equal(t, "<p>hello</p>", aws.ToString(in.Content.Simple.Body.Html.Data))
}

func TestSESSenderFailure(t *testing.T) {
	s := &SESSender{client: &fakeSES{err: errors.New("throttled")}, fromEmail: "noreply@example.com"}
	_, err := s.Send(context.Background(), testMessage())
	assert.ErrorContains(t, err, "throttled")
}

func TestStubSender(t *testing.T) {
	id, err := StubSender{}.Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "stub-"))
}

func TestContactMailerCompose(t *testing.T) {
	m := NewContactMailer(StubSender{}, "owner@example.com")
	m.now = func() time.Time { return time.Date(2025, 3, 14, 6, 9, 26, 0, time.UTC) }

	msg, err := m.Compose("visitor@example.com", "Hi <b>there</b>\nsecond line")
	require.NoError(t, err)

	assert.Equal(t, "owner@example.com", msg.To)
	assert.Equal(t, "visitor@example.com", msg.ReplyTo)
	assert.Equal(t, ContactSubject, msg.Subject)

	assert.Contains(t, msg.HTML, "Hi &lt;b&gt;there&lt;/b&gt;<br>second line")
	assert.NotContains(t, msg.HTML, "<b>there</b>")
	assert.Contains(t, msg.HTML, "Timestamp: 2025. 3. 14. 15:09:26")

	assert.Contains(t, msg.Text, "From: visitor@example.com")
	assert.Contains(t, msg.Text, "Hi <b>there</b>\nsecond line")
	assert.Contains(t, msg.Text, "Timestamp: 2025. 3. 14. 15:09:26")
}

func TestContactMailerSend(t *testing.T) {
	rec := &recordingSender{}
	m := NewContactMailer(rec, "owner@example.com")

	id, err := m.Send(context.Background(), "visitor@example.com", "hello")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", id)
	assert.Equal(t, "visitor@example.com", rec.msg.ReplyTo)
	assert.Equal(t, "owner@example.com", rec.msg.To)
}
