// Package textnorm canonicalizes free text before matching.
//
// Normalize folds case, decomposes to NFD, drops combining marks and
// recomposes to NFC, so "Ngāruawāhia" and "ngaruawahia" compare equal.
// Whitespace runs collapse to a single space.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns the matching form of s. It never fails and is idempotent:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// transform.Chain is stateful, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		// Only reachable on invalid UTF-8; fall back to the NFC form.
		stripped = norm.NFC.String(s)
	}

	lowered := cases.Lower(language.Und).String(stripped)
	return strings.Join(strings.Fields(lowered), " ")
}

// Equal reports whether a and b are equal after normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// ContainsWord reports whether the normalized text contains word as a whole
// word. Both arguments are normalized first.
func ContainsWord(text, word string) bool {
	t := " " + wordsOnly(Normalize(text)) + " "
	w := wordsOnly(Normalize(word))
	if w == "" {
		return false
	}
	return strings.Contains(t, " "+w+" ")
}

// wordsOnly replaces punctuation with spaces so word boundaries are spaces.
func wordsOnly(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}
