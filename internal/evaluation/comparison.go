package evaluation

import (
	"strings"
)

// Comparison scores a constructed call number against the expected one.
type Comparison struct {
	Exact bool `json:"exact" yaml:"exact"`
	// Similarity is 1 - distance/longer length, from 0 to 1.
	Similarity float64 `json:"similarity" yaml:"similarity"`
	Distance   int     `json:"distance" yaml:"distance"`
}

// Compare compares two call numbers after collapsing whitespace and case, so
// "FIC  adams" matches "FIC ADAMS".
func Compare(expected, actual string) Comparison {
	e, a := normalizeCallNumber(expected), normalizeCallNumber(actual)
	d := levenshteinDistance(e, a)
	return Comparison{
		Exact:      e == a,
		Similarity: similarity(e, a, d),
		Distance:   d,
	}
}

func normalizeCallNumber(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

func similarity(s1, s2 string, distance int) float64 {
	if s1 == s2 {
		return 1.0
	}
	maxLen := len([]rune(s1))
	if n := len([]rune(s2)); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// levenshteinDistance counts rune edits with a two row table.
func levenshteinDistance(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(r2)]
}
