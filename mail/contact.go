package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// ContactSubject is the subject of every contact form email
const ContactSubject = "New Contact Form Submission"

// footerLayout renders the submission time in the recipient's zone
const footerLayout = "2006. 1. 2. 15:04:05"

// KST is the zone contact timestamps are rendered in
var KST = time.FixedZone("KST", 9*60*60)

var contactHTML = template.Must(template.New("contact").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #030213; border-bottom: 2px solid #f0f0f0; padding-bottom: 10px;">New Contact Form Submission</h2>
  <div style="background: #f9f9f9; padding: 20px; margin: 20px 0; border-radius: 8px;">
    <p><strong>From:</strong> {{.Email}}</p>
    <p><strong>Message:</strong></p>
    <div style="background: white; padding: 15px; border-radius: 5px; margin-top: 10px;">{{range $i, $line := .Lines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</div>
  </div>
  <div style="color: #666; font-size: 12px; margin-top: 30px; border-top: 1px solid #ddd; padding-top: 15px;">
    <p>This email was sent from your blog contact form.</p>
    <p>Timestamp: {{.Timestamp}}</p>
  </div>
</div>
`))

// ContactMailer forwards contact form submissions to the site owner
type ContactMailer struct {
	sender Sender
	to     string
	now    func() time.Time
}

// NewContactMailer creates a mailer delivering submissions to the given address
func NewContactMailer(sender Sender, to string) *ContactMailer {
	return &ContactMailer{sender: sender, to: to, now: time.Now}
}

// Compose builds the email for a submission. The visitor's address is used as reply-to.
func (m *ContactMailer) Compose(email, message string) (Message, error) {
	timestamp := m.now().In(KST).Format(footerLayout)
	lines := strings.Split(strings.ReplaceAll(message, "\r\n", "\n"), "\n")

	var buf bytes.Buffer
	err := contactHTML.Execute(&buf, struct {
		Email     string
		Lines     []string
		Timestamp string
	}{email, lines, timestamp})
	if err != nil {
		return Message{}, fmt.Errorf("failed to render contact email: %w", err)
	}

	text := fmt.Sprintf("New Contact Form Submission\n\nFrom: %s\n\nMessage:\n%s\n\n--\nThis email was sent from your blog contact form.\nTimestamp: %s\n",
		email, message, timestamp)

	return Message{
		To:      m.to,
		ReplyTo: email,
		Subject: ContactSubject,
		Text:    text,
		HTML:    buf.String(),
	}, nil
}

// Send composes and delivers a submission, returning the provider's message id
func (m *ContactMailer) Send(ctx context.Context, email, message string) (string, error) {
	msg, err := m.Compose(email, message)
	if err != nil {
		return "", err
	}
	return m.sender.Send(ctx, msg)
}
