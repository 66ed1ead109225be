package match

import (
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// Score bounds.
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Abbreviation scoring: "man utd" ~ "manchester united".
const (
	minAbbreviationLen   = 3
	abbreviationPenalty  = 5.0
	minAbbreviationScore = 80.0
)

// Score computes the similarity of two already-normalized names on a 0-100
// scale. It is the maximum of three symmetric scorers:
//   - Levenshtein ratio: 100 * (1 - distance / max(len(a), len(b)))
//   - Jaro-Winkler similarity, which rewards a shared prefix
//   - token abbreviation score for names like "man utd"
//
// Score(a, b) == Score(b, a). Identical names score 100, distinct ones
// strictly less; a name scored against an empty string is 0.
func Score(a, b string) float64 {
	if a == b {
		return MaxScore
	}

	if a == "" || b == "" {
		return MinScore
	}

	return max(LevenshteinRatio(a, b), JaroWinkler(a, b), AbbreviationScore(a, b))
}

// LevenshteinRatio converts the rune-level edit distance into a 0-100 similarity.
func LevenshteinRatio(a, b string) float64 {
	if a == b {
		return MaxScore
	}

	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	distance := edlib.LevenshteinDistance(a, b)

	return MaxScore * (1.0 - float64(distance)/float64(maxLen))
}

// JaroWinkler returns the Jaro-Winkler similarity scaled to 0-100.
// Arguments are put in a canonical order first so the result does not
// depend on which side is the query.
func JaroWinkler(a, b string) float64 {
	if a > b {
		a, b = b, a
	}

	return MaxScore * float64(edlib.JaroWinklerSimilarity(a, b))
}

// AbbreviationScore scores names with the same number of words where every
// differing word pair is an abbreviation (same first letter, at least three
// letters, ordered subsequence of the longer word). Each abbreviated word
// costs abbreviationPenalty points; names that do not qualify score 0.
func AbbreviationScore(a, b string) float64 {
	ta, tb := strings.Fields(a), strings.Fields(b)
	if len(ta) == 0 || len(ta) != len(tb) {
		return MinScore
	}

	abbreviated := 0

	for i := range ta {
		if ta[i] == tb[i] {
			continue
		}

		if !abbreviates(ta[i], tb[i]) && !abbreviates(tb[i], ta[i]) {
			return MinScore
		}

		abbreviated++
	}

	// Same words, different spacing: left to the edit-distance scorers.
	if abbreviated == 0 {
		return MinScore
	}

	return max(MaxScore-abbreviationPenalty*float64(abbreviated), minAbbreviationScore)
}

// abbreviates reports whether short abbreviates long.
func abbreviates(short, long string) bool {
	rs, rl := []rune(short), []rune(long)
	if len(rs) < minAbbreviationLen || len(rs) >= len(rl) || rs[0] != rl[0] {
		return false
	}

	j := 0
	for _, r := range rl {
		if j < len(rs) && rs[j] == r {
			j++
		}
	}

	return j == len(rs)
}
