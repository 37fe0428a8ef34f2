// Package phone normalizes user-supplied phone numbers into the bare digit
// form the gateway expects.
package phone

import (
	"errors"
	"regexp"
	"strings"
)

const (
	MinDigits = 10
	MaxDigits = 15
)

var (
	ErrInvalid = errors.New("invalid phone number")

	nonDialable = regexp.MustCompile(`[^\d+]`)
)

// Normalize strips everything but digits, drops any '+' and checks that the
// remaining digit count is within [MinDigits, MaxDigits].
func Normalize(raw string) (string, error) {
	cleaned := nonDialable.ReplaceAllString(raw, "")
	cleaned = strings.ReplaceAll(cleaned, "+", "")

	if n := len(cleaned); n < MinDigits || n > MaxDigits {
		return "", ErrInvalid
	}
	return cleaned, nil
}

// Valid reports whether raw normalizes.
func Valid(raw string) bool {
	_, err := Normalize(raw)
	return err == nil
}

// StripJID removes a gateway address suffix such as "@s.whatsapp.net".
func StripJID(addr string) string {
	if i := strings.IndexByte(addr, '@'); i >= 0 {
		return addr[:i]
	}
	return addr
}
