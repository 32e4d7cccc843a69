package match

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Normalize trims surrounding whitespace and case-folds s.
func Normalize(s string) string {
	// A Caser keeps state between calls and must not be shared.
	return cases.Fold().String(strings.TrimSpace(s))
}

// Tokens splits s on every rune that is not a letter or a digit and returns
// the distinct tokens in sorted order.
func Tokens(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) == 0 {
		return nil
	}
	sort.Strings(fields)
	out := fields[:1]
	for _, f := range fields[1:] {
		if f != out[len(out)-1] {
			out = append(out, f)
		}
	}
	return out
}
