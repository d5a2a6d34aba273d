// Package text splits learner-facing text into chips.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// CleanFunc normalises a single token.
type CleanFunc func(token string) string

// Chips splits text on whitespace and cleans every token, keeping order.
// Tokens that clean to "" are kept.
func Chips(text string, clean CleanFunc) []string {
	fields := strings.Fields(text)
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = clean(f)
	}
	return out
}

// CleanWord is the default CleanFunc. It NFC-normalises the token, folds it
// to lower case and strips leading and trailing punctuation.
func CleanWord(token string) string {
	s := norm.NFC.String(token)
	// Casers carry state, so one is made per call.
	s = cases.Lower(language.Und).String(s)
	return strings.TrimFunc(s, unicode.IsPunct)
}
