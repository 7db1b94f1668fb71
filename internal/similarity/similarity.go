// Package similarity scores how closely two normalized strings resemble
// each other, using Levenshtein edit distance and token-overlap heuristics.
package similarity

import "strings"

// Scoring weights for TokenScore. These were tuned empirically against the
// production catalog; see the match package for the thresholds they feed.
const (
	// TokenWeight is added once per product token contained in the image token.
	TokenWeight = 50
	// BrandBonus is added when the brand token is contained in the image token.
	BrandBonus = 100
)

// EditDistance computes the Levenshtein distance between a and b, with
// insertion, deletion and substitution each costing 1. It operates on runes
// so multi-byte characters count as single edits.
func EditDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	rows := len(ra) + 1
	cols := len(rb) + 1

	d := make([][]int, rows)
	for i := range d {
		d[i] = make([]int, cols)
		d[i][0] = i
	}
	for j := 1; j < cols; j++ {
		d[0][j] = j
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			del := d[i-1][j] + 1
			ins := d[i][j-1] + 1
			sub := d[i-1][j-1] + cost

			best := del
			if ins < best {
				best = ins
			}
			if sub < best {
				best = sub
			}
			d[i][j] = best
		}
	}

	return d[rows-1][cols-1]
}

// Ratio returns a similarity in [0, 1] derived from the edit distance:
// (maxLen - distance) / maxLen. Two empty strings are identical, so the
// ratio is defined as 1.
func Ratio(a, b string) float64 {
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	return float64(maxLen-EditDistance(a, b)) / float64(maxLen)
}

// TokenScore counts how many product tokens appear as substrings of the
// image token and weights the count by TokenWeight, adding BrandBonus when
// the non-empty brand token is also contained. A product with no matching
// tokens scores 0 regardless of brand. Containment is used instead of edit
// distance because image filenames routinely abbreviate or drop words.
func TokenScore(productTokens []string, brandToken, imageToken string) int {
	matched := 0
	for _, tok := range productTokens {
		if strings.Contains(imageToken, tok) {
			matched++
		}
	}
	if matched == 0 {
		return 0
	}

	score := matched * TokenWeight
	if brandToken != "" && strings.Contains(imageToken, brandToken) {
		score += BrandBonus
	}
	return score
}
