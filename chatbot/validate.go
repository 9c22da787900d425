package chatbot

import (
	"regexp"
	"strings"
)

// local@domain.tld with no whitespace or extra @ in any part. Whitespace
// includes Unicode spaces and the byte order mark.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// IsValidEmail reports whether s looks like an email address. It is a syntax
// check only.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// NormalizeEmail trims surrounding whitespace and lower-cases the domain
func NormalizeEmail(s string) string {
	s = strings.TrimSpace(s)
	i := strings.LastIndex(s, "@")
	if i < 0 {
		return s
	}
	return s[:i+1] + strings.ToLower(s[i+1:])
}
