package gateway

import (
	"errors"
	"fmt"

	"github.com/onurcolak/whatsapp-session-bridge/pkg/sanitize"
)

var (
	// ErrUnreachable covers network failures and timeouts.
	ErrUnreachable = errors.New("gateway unreachable")
	// ErrBadResponse covers non-JSON bodies and unexpected response shapes.
	ErrBadResponse = errors.New("bad gateway response")
)

// maxBodySnippet counts runes.
const maxBodySnippet = 256

// Error describes a failed gateway call. Kind is ErrUnreachable or
// ErrBadResponse and is matched with errors.Is.
type Error struct {
	Kind       error
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (http %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Body != "" {
		msg += ", body: " + e.Body
	}
	return msg
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

func unreachable(op string, err error) *Error {
	return &Error{Kind: ErrUnreachable, Op: op, Err: err}
}

func badResponse(op string, status int, body []byte, err error) *Error {
	snippet := string(body)
	if cut := sanitize.Truncate(snippet, maxBodySnippet); cut != snippet {
		snippet = cut + "..."
	}
	return &Error{Kind: ErrBadResponse, Op: op, StatusCode: status, Body: snippet, Err: err}
}
