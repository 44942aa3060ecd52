// Package normalize prepares user input and entity labels for alias matching.
//
// Both sides of a lookup (the alias table built from reference data and the
// incoming user question) are passed through Normalize, so matching is
// case-insensitive, accent-insensitive, and tolerant of possessive forms
// like "Bayerns" or "Frankfurt's".
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents removes combining marks after NFD decomposition, so
// "München" folds to "munchen" and "Köln" to "koln".
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// trailingPunctuation is the set of characters trimmed from the end of a query.
const trailingPunctuation = ".,!?;:"

// Normalize lowercases the text, folds German umlauts and other accents to
// their ASCII base letters (ß becomes ss), trims trailing punctuation,
// collapses runs of whitespace, and strips a possessive suffix from the
// final word. It is a pure function and idempotent:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))

	// ß has no combining-mark decomposition, so fold it explicitly before
	// the accent-stripping transform.
	lowered = strings.ReplaceAll(lowered, "ß", "ss")
	folded, _, err := transform.String(stripAccents, lowered)
	if err != nil {
		// The transform chain cannot fail on valid UTF-8; fall back to the
		// lowercased text for anything pathological.
		folded = lowered
	}

	folded = strings.TrimRight(folded, trailingPunctuation)

	// Collapse interior whitespace runs to single spaces.
	words := strings.Fields(folded)
	if len(words) == 0 {
		return ""
	}

	words[len(words)-1] = stripPossessive(words[len(words)-1])
	// A free-standing possessive marker ("'s") strips to nothing; drop it so
	// the join does not leave a trailing space.
	if words[len(words)-1] == "" {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// stripPossessive removes an English or German possessive suffix from a word:
// "bayern's" and "bayerns" both become "bayern". A bare trailing "s" is only
// stripped from words long enough to plausibly be a proper noun, and never
// when the word ends in a double "s" (so "cottbus" loses its s, "boss" does
// not re-trigger on repeated application).
func stripPossessive(word string) string {
	if strings.HasSuffix(word, "'s") {
		word = word[:len(word)-2]
	} else if strings.HasSuffix(word, "s'") {
		word = word[:len(word)-1]
	}
	if len(word) > 3 && strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") {
		word = word[:len(word)-1]
	}
	return word
}
