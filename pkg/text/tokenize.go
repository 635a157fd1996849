// Package text turns raw document text into the token sequences the
// vectorizer consumes.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenize splits s into lowercase alphanumeric tokens. Input is NFKC
// normalized first so compatibility forms (ligatures, fullwidth digits)
// compare equal to their plain spellings. Runs of non-letter, non-digit
// runes separate tokens and are discarded; the result never contains an
// empty token.
func Tokenize(s string) []string {
	lower := strings.ToLower(norm.NFKC.String(s))
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
