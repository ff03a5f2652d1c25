// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"strings"
	"unicode"
)

// Make lower-cases s, strips every character that is not an ASCII letter,
// digit, whitespace or hyphen, turns whitespace runs into single hyphens and
// collapses repeated hyphens. Leading and trailing hyphens are trimmed.
//
// Make is idempotent: Make(Make(s)) == Make(s).
func Make(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastHyphen := true // suppresses a leading hyphen
	for _, r := range strings.ToLower(s) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			lastHyphen = false
		case r == '-' || unicode.IsSpace(r):
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
