package utils

import (
	"strings"
	"unicode"

	"github.com/aryann/difflib"
)

// TokenizeWords splits s into lower-cased words, dropping spaces and punctuation.
func TokenizeWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || r == '-' || r == '\'')
	})
}

// WordOverlap returns the share of words common to a and b, relative to the
// longer of the two. 1 means the same words in the same order.
func WordOverlap(a, b string) float64 {
	at, bt := TokenizeWords(a), TokenizeWords(b)
	longest := max(len(at), len(bt))
	if longest == 0 {
		return 1
	}
	var common int
	for _, r := range difflib.Diff(at, bt) {
		if r.Delta == difflib.Common {
			common++
		}
	}
	return float64(common) / float64(longest)
}
