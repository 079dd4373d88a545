package service

import "errors"

var (
	// ErrNotConfigured is returned when no storage backend was configured.
	ErrNotConfigured = errors.New("database not configured: set SUPABASE_URL and SUPABASE_ANON_KEY (or DATABASE_URL)")

	// ErrRequiredFields is returned when a required contact field is empty
	// once sanitized.
	ErrRequiredFields = errors.New("required fields: name, email, message")

	// ErrAlreadySubscribed is returned when the email is already on the newsletter.
	ErrAlreadySubscribed = errors.New("already subscribed")
)
