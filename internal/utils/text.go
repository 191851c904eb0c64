package utils

import (
	"strings"
	"unicode"
)

// Slugify lowercases s and collapses every run of non-alphanumeric
// characters into a single hyphen, suitable for a shareable URL id.
// Returns "" when s contains nothing usable.
func Slugify(s string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			hyphen = false
			b.WriteRune(r)
			continue
		}
		hyphen = true
	}
	return b.String()
}

// TruncateWords cuts s to at most max runes, preferring a word boundary,
// for chat descriptions and slug candidates.
func TruncateWords(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := string(runes[:max])
	if idx := strings.LastIndexByte(cut, ' '); idx > max/2 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}
