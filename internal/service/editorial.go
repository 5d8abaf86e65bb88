// Package service implements the application's business rules: the
// article lifecycle, the published listing and the like counter.
package service

import (
	"strings"
)

const (
	wordsPerMinute = 200
	excerptRunes   = 150
)

// slugSafe reports whether r may appear in a slug. The safe set is
// lowercase ASCII letters, digits and the Turkish letters the editorial
// titles actually use.
func slugSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	}
	switch r {
	case 'ş', 'ğ', 'ü', 'ö', 'ç', 'ı':
		return true
	}
	return false
}

// Slugify derives a URL-safe slug from a title: lower-cased, characters
// outside the safe set dropped, whitespace runs collapsed to single
// hyphens, leading and trailing hyphens trimmed. Uniqueness against the
// store is handled separately by the repository.
func Slugify(title string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	pendingHyphen := false
	for _, r := range lowered {
		switch {
		case slugSafe(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-':
			pendingHyphen = true
		}
	}
	return b.String()
}

// DeriveExcerpt returns the supplied excerpt when present, otherwise the
// first 150 characters of the content followed by an ellipsis marker.
func DeriveExcerpt(excerpt, content string) string {
	if trimmed := strings.TrimSpace(excerpt); trimmed != "" {
		return trimmed
	}
	runes := []rune(strings.TrimSpace(content))
	if len(runes) <= excerptRunes {
		return string(runes) + "..."
	}
	return string(runes[:excerptRunes]) + "..."
}

// ComputeReadTime estimates reading minutes as ceil(words/200) with a
// minimum of one minute. Words are whitespace-delimited non-empty tokens.
func ComputeReadTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 1
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// NormalizeTags lowercases, trims and de-duplicates tags while keeping
// their original order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
