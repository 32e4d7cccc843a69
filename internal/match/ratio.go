package match

import (
	"strings"
	"unicode/utf8"
)

// TokenSetRatio scores the similarity of a and b in [0, 100] by comparing
// their token sets rather than their character sequences, so word order and
// one side carrying extra tokens matter little. Both inputs are normalized
// first. It returns 0 when either side has no tokens and 100 when one
// non-empty token set contains the other.
func TokenSetRatio(a, b string) float64 {
	return tokenSetRatio(Tokens(Normalize(a)), Tokens(Normalize(b)))
}

// tokenSetRatio works on sorted, deduplicated token lists.
func tokenSetRatio(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	sect, diffAB, diffBA := partition(a, b)
	if len(sect) > 0 && (len(diffAB) == 0 || len(diffBA) == 0) {
		return 100
	}

	joinedAB := strings.Join(diffAB, " ")
	joinedBA := strings.Join(diffBA, " ")
	abLen := utf8.RuneCountInString(joinedAB)
	baLen := utf8.RuneCountInString(joinedBA)
	sectLen := utf8.RuneCountInString(strings.Join(sect, " "))

	// Lengths of "sect diffAB" and "sect diffBA"; the separator only exists
	// when there is an intersection.
	sep := 0
	if sectLen > 0 {
		sep = 1
	}
	sectABLen := sectLen + sep + abLen
	sectBALen := sectLen + sep + baLen

	// The shared prefix contributes nothing to the distance between
	// "sect diffAB" and "sect diffBA".
	result := normalizedSimilarity(indelDistance(joinedAB, joinedBA), sectABLen+sectBALen)
	if sectLen == 0 {
		return result
	}

	// "sect" against "sect diff" differs only by the appended part.
	sectAB := normalizedSimilarity(sep+abLen, sectLen+sectABLen)
	sectBA := normalizedSimilarity(sep+baLen, sectLen+sectBALen)
	return max(result, sectAB, sectBA)
}

// partition splits two sorted token lists into their intersection and the
// two differences, each still sorted.
func partition(a, b []string) (sect, diffAB, diffBA []string) {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			sect = append(sect, a[i])
			i++
			j++
		case a[i] < b[j]:
			diffAB = append(diffAB, a[i])
			i++
		default:
			diffBA = append(diffBA, b[j])
			j++
		}
	}
	diffAB = append(diffAB, a[i:]...)
	diffBA = append(diffBA, b[j:]...)
	return sect, diffAB, diffBA
}

// normalizedSimilarity maps an indel distance over strings of combined
// length lensum to [0, 100].
func normalizedSimilarity(dist, lensum int) float64 {
	if lensum == 0 {
		return 100
	}
	return 100 * (1 - float64(dist)/float64(lensum))
}

// indelDistance is the number of insertions and deletions that turn a into
// b: len(a) + len(b) - 2*LCS(a, b), counted in runes.
func indelDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	// Single-row LCS table over the shorter string.
	row := make([]int, len(rb)+1)
	for _, ca := range ra {
		diag := 0
		for j, cb := range rb {
			up := row[j+1]
			if ca == cb {
				row[j+1] = diag + 1
			} else if row[j] > row[j+1] {
				row[j+1] = row[j]
			}
			diag = up
		}
	}
	return len(ra) + len(rb) - 2*row[len(rb)]
}
