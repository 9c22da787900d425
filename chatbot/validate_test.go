package chatbot_test

import (
	"testing"

	"github.com/60cod/ygna-chat/chatbot"
	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"user@example.com", true},
		{"me@test.com", true},
		{"first.last+tag@sub.domain.org", true},
		{"not-an-email", false},
		{"bad-email", false},
		{"", false},
		{"user@", false},
		{"@example.com", false},
		{"user@example", false},
		{"user name@example.com", false},
		{"user@@example.com", false},
		{"user@exa mple.com", false},
		{"user\u00a0name@example.com", false},
		{"user@example\u3000.com", false},
		{"user@exa\vmple.com", false},
		{"user@example.com\ufeff", false},
		{"유저@example.kr", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, chatbot.IsValidEmail(tt.input))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "User@example.com", chatbot.NormalizeEmail("  User@EXAMPLE.com\t"))
	assert.Equal(t, "me@test.com", chatbot.NormalizeEmail("me@test.com"))
	assert.Equal(t, "no-at-sign", chatbot.NormalizeEmail(" no-at-sign "))

	// normalized addresses stay valid
	assert.True(t, chatbot.IsValidEmail(chatbot.NormalizeEmail(" A@B.CO ")))
}
