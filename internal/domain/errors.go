package domain

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrNoActiveSession = errors.New("no active session")
	ErrNotFound        = errors.New("not found")

	// Webhook authentication failures.
	ErrMissingSession = errors.New("no sessionId provided")
	ErrMissingToken   = errors.New("no authentication token")
	ErrUnknownSession = errors.New("unknown session")
	ErrUnauthorized   = errors.New("unauthorized")
)
