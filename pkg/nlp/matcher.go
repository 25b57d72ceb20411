package nlp

import (
	"math"
	"sort"
	"strings"
)

// Matcher finds the catalog entry a spoken utterance most likely refers to.
// Candidates are registered by name; matching is exact-first, then
// containment, then Levenshtein similarity so small recognition slips
// ("mansanas") still land on the right product.
type Matcher struct {
	threshold float64
}

func NewMatcher() *Matcher {
	return &Matcher{threshold: 0.6}
}

// BestMatch returns the candidate with the highest score against the
// utterance, or ok=false when nothing clears the similarity threshold.
func (m *Matcher) BestMatch(utterance string, candidates []string) (MatchResult, bool) {
	text := Normalize(utterance)

	var results []MatchResult
	for _, cand := range candidates {
		name := Normalize(cand)
		if name == "" {
			continue
		}

		switch {
		case strings.Contains(text, name):
			results = append(results, MatchResult{Name: cand, Score: 1.0, Type: "exact"})
		default:
			score := bestWordSimilarity(text, name)
			if score >= m.threshold {
				results = append(results, MatchResult{Name: cand, Score: score, Type: "fuzzy"})
			}
		}
	}

	if len(results) == 0 {
		return MatchResult{}, false
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results[0], true
}

// bestWordSimilarity scores name against every word window of the utterance
// and keeps the best, so "agregar cinco mansanas" matches "manzanas".
func bestWordSimilarity(text, name string) float64 {
	best := 0.0
	for _, word := range strings.Fields(text) {
		if s := similarity(word, name); s > best {
			best = s
		}
	}
	return best
}

func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		shorter, longer := a, b
		if len(a) > len(b) {
			shorter, longer = b, a
		}
		return float64(len(shorter)) / float64(len(longer))
	}

	maxLen := math.Max(float64(len(a)), float64(len(b)))
	if maxLen == 0 {
		return 0
	}

	return math.Max(0, 1.0-float64(levenshtein(a, b))/maxLen)
}

func levenshtein(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			matrix[i][j] = minOf(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}

func minOf(a, b, c int) int {
	if a < b && a < c {
		return a
	} else if b < c {
		return b
	}
	return c
}
