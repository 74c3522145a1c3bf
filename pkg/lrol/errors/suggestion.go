package errors

import (
	"fmt"
	"strings"
)

// SuggestName returns a "Did you mean" hint for the candidate closest to
// unknown, or "" when nothing is within a few edits.
func SuggestName(unknown string, candidates []string) string {
	if len(candidates) == 0 || unknown == "" {
		return ""
	}

	best, dist := closest(unknown, candidates)
	if dist <= maxSuggestDistance(unknown) {
		return fmt.Sprintf("Did you mean '%s'?", best)
	}
	return ""
}

// SuggestOperator suggests a valid operator, falling back to listing all of them.
func SuggestOperator(unknown string, valid []string) string {
	if len(valid) == 0 {
		return ""
	}
	best, dist := closest(strings.ToUpper(unknown), valid)
	if dist <= maxSuggestDistance(unknown) {
		return fmt.Sprintf("Did you mean '%s'?", best)
	}
	return fmt.Sprintf("Valid operators: %s", strings.Join(valid, ", "))
}

// SuggestEvaluationType suggests a valid evaluation type.
func SuggestEvaluationType(unknown string, valid []string) string {
	if len(valid) == 0 {
		return ""
	}
	best, dist := closest(strings.ToLower(unknown), valid)
	if dist <= maxSuggestDistance(unknown) {
		return fmt.Sprintf("Did you mean '%s'?", best)
	}
	return fmt.Sprintf("Valid evaluation types: %s", strings.Join(valid, ", "))
}

func maxSuggestDistance(s string) int {
	if n := len(s) / 2; n < 3 {
		return max(n, 1)
	}
	return 3
}

func closest(unknown string, candidates []string) (string, int) {
	bestDist := -1
	var best string
	for _, c := range candidates {
		d := levenshteinDistance(unknown, c)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best, bestDist
}

// levenshteinDistance computes the edit distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}
