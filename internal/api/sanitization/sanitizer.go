package sanitization

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// A tag opens with a letter, '/', '!' or '?' and closes on the same line.
	tagRegex        = regexp.MustCompile(`<[a-zA-Z/!?][^<>\n]*>`)
	tagOpenRegex    = regexp.MustCompile(`<+([a-zA-Z/!?])`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
	lineEndings     = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// SanitizeName reduces a name to a single line of plain text
func SanitizeName(input string) string {
	safe := stripMarkup(input)

	// Drop control characters, newlines become spaces below
	safe = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, safe)

	// Remove multiple spaces
	safe = whitespaceRegex.ReplaceAllString(safe, " ")

	return strings.TrimSpace(safe)
}

// SanitizeMessage removes markup and control characters from free text.
// Line breaks, tabs, quotes and ampersands are kept as typed.
func SanitizeMessage(input string) string {
	safe := lineEndings.Replace(input)
	safe = stripMarkup(safe)

	safe = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, safe)

	return strings.TrimSpace(safe)
}

// SanitizeEmail trims an email address and lower-cases its domain. The local
// part is case-sensitive and kept as typed.
func SanitizeEmail(input string) string {
	email := strings.TrimSpace(input)
	if at := strings.LastIndex(email, "@"); at >= 0 {
		email = email[:at+1] + strings.ToLower(email[at+1:])
	}
	return email
}

// stripMarkup removes tags until none are left, then drops the bracket of any
// unclosed tag. A '<' or '>' that cannot start or end a tag is plain text.
func stripMarkup(input string) string {
	safe := input
	for {
		next := tagRegex.ReplaceAllString(safe, "")
		if next == safe {
			break
		}
		safe = next
	}
	return tagOpenRegex.ReplaceAllString(safe, "$1")
}
