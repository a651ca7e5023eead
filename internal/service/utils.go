package service

import (
	"strings"
	"unicode/utf8"
)

// collapseWhitespace reduces every whitespace run to a single space and trims
// the ends. Model transcriptions and PDF text come back with arbitrary
// newlines and padding.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripJSONFence removes an optional surrounding markdown code fence from a
// model reply, returning the inner payload.
func stripJSONFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") && strings.HasSuffix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

// truncate shortens s to at most n bytes on a rune boundary, appending an
// ellipsis when something was cut. Used for error messages that quote model
// replies.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

// sanitizeUTF8 removes invalid UTF-8 sequences from string
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			// Invalid UTF-8 sequence, skip this byte
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}
