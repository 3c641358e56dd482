// Package redact produces masked previews of matched secrets for display.
package redact

import "strings"

const (
	// DefaultReveal is how many leading characters stay visible.
	DefaultReveal = 4
	// maxPreviewLen caps the total preview length regardless of secret size.
	maxPreviewLen = 32
	maskChar      = "*"
)

// Mask returns a display-safe preview of secret: the first reveal characters
// followed by mask characters, capped at a fixed total length. Secrets too
// short to safely reveal a prefix are masked entirely. Lengths count runes,
// not bytes, so the revealed prefix never splits a multibyte character. The
// function is pure and deterministic for a given (secret, reveal) pair.
func Mask(secret string, reveal int) string {
	if secret == "" {
		return ""
	}
	if reveal < 0 {
		reveal = 0
	}
	runes := []rune(secret)
	n := len(runes)
	if n > maxPreviewLen {
		n = maxPreviewLen
	}
	// Revealing a prefix of a short secret would leak most of it.
	if len(runes) <= 2*reveal {
		return strings.Repeat(maskChar, n)
	}
	if reveal > n {
		reveal = n
	}
	return string(runes[:reveal]) + strings.Repeat(maskChar, n-reveal)
}
