// Package normalize reduces free text to comparable tokens for fuzzy
// catalog matching.
package normalize

import "strings"

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// Key reduces text to lowercase alphanumeric characters only. The result
// has no separators at all, which makes it suitable for substring and
// edit-distance comparison. Key is pure and idempotent; empty input yields
// an empty key.
func Key(text string) string {
	lower := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if isAlnum(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Slug lowercases text and collapses every run of non-alphanumeric
// characters into a single hyphen, trimming hyphens at both ends. Slugs are
// used when deriving filenames, never for comparison.
func Slug(text string) string {
	lower := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lower))
	pendingHyphen := false
	for _, r := range lower {
		if isAlnum(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// Tokens splits text on whitespace and returns the normalized form of every
// token longer than two characters. Short tokens like "ml" or "50" match
// almost any filename and only add noise to overlap scores.
func Tokens(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		key := Key(f)
		if len(key) > 2 {
			tokens = append(tokens, key)
		}
	}
	return tokens
}
