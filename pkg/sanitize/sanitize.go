// Package sanitize cleans message text and file names before they are stored
// or forwarded to the gateway.
package sanitize

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Control characters except tab, newline and carriage return, plus the C1 block.
var controlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x{7f}-\x{9f}]`)

var unsafeFilename = regexp.MustCompile(`[^\w.\- ]`)

// Message strips control characters and surrounding whitespace. It never
// rejects input; the result may be empty.
func Message(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return strings.TrimSpace(controlChars.ReplaceAllString(s, ""))
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// Filename returns a safe base name, or fallback when nothing usable remains.
func Filename(name, fallback string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = unsafeFilename.ReplaceAllString(base, "_")
	base = strings.Trim(base, ". ")
	if base == "" || base == "_" {
		return fallback
	}
	return Truncate(base, 120)
}
