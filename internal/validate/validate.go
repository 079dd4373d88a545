// Package validate holds the pure input checks and sanitizers applied to form
// submissions before they reach storage.
package validate

import (
	"regexp"
	"strings"
)

const (
	// MaxFieldLength caps every sanitized free-text field.
	MaxFieldLength = 1000
	// MaxMessageLength caps the message body, measured in characters.
	MaxMessageLength = 5000
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s+\-()]{7,20}$`)
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
)

// IsValidEmail reports whether s looks like local@domain.tld.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidPhone reports whether s is a plausible phone number. An empty value
// is valid since the phone field is optional.
func IsValidPhone(s string) bool {
	if s == "" {
		return true
	}
	return phonePattern.MatchString(s)
}

// SanitizeString strips HTML-like tags, trims surrounding whitespace and
// truncates the result to MaxFieldLength characters.
func SanitizeString(s string) string {
	return SanitizeText(s, MaxFieldLength)
}

// SanitizeText is SanitizeString with an explicit character limit.
func SanitizeText(s string, limit int) string {
	s = strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
	return truncate(s, limit)
}

// SanitizeOptional sanitizes an optional field. A nil input, or one that is
// empty once sanitized, yields nil.
func SanitizeOptional(p *string) *string {
	if p == nil {
		return nil
	}
	s := SanitizeString(*p)
	if s == "" {
		return nil
	}
	return &s
}

// NormalizeEmail trims and lower-cases an address for storage and lookups.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Length returns the length of s in characters.
func Length(s string) int {
	return len([]rune(s))
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
