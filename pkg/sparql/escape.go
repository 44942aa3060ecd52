package sparql

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// EscapeLiteral escapes a string for embedding in a double-quoted SPARQL
// literal: backslashes and double quotes are backslash-escaped.
func EscapeLiteral(text string) string {
	escaped := strings.ReplaceAll(text, `\`, `\\`)
	return strings.ReplaceAll(escaped, `"`, `\"`)
}

// EscapeRegex escapes a label for use inside a SPARQL REGEX() pattern.
// Backslashes must be doubled twice (once for the string literal, once for
// the regex engine), and whitespace runs become a flexible \s+ so labels
// with varying spacing still match.
func EscapeRegex(text string) string {
	escaped := strings.ReplaceAll(text, `\`, `\\\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return whitespaceRun.ReplaceAllString(escaped, `\\s+`)
}
