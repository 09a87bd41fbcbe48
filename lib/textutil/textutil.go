package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// StripOuterParens trims the string and, if it is fully wrapped in a
// single pair of parentheses, returns the interior. Anything else comes
// back unchanged (post-trim). The site uses parenthesized annotations
// everywhere: "(Sequel)", "(Add)", rank changes like "(+2)".
func StripOuterParens(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		return s[1 : len(s)-1]
	}
	return s
}

// CollapseWhitespace flattens runs of whitespace down to a single space.
func CollapseWhitespace(s string) string {
	return innerWhitespace.ReplaceAllString(s, " ")
}

func RemoveNonPrintable(s string) string {
	out := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			out.WriteRune(c)
		}
	}
	return out.String()
}

// CleanFragment normalizes a text fragment pulled out of markup: strips
// non-printable runes, trims, and collapses inner whitespace.
func CleanFragment(s string) string {
	s = RemoveNonPrintable(s)
	s = strings.Trim(s, " \t\n")
	return CollapseWhitespace(s)
}
