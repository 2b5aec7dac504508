// Package suggest ranks known names against partial user input. The
// editor uses it to offer locations; nothing is rejected for not matching.
package suggest

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Match is a ranked candidate.
type Match struct {
	Value string
	Score float64
}

// Rank scores every known value against input and returns the matches in
// descending score, ties broken alphabetically. Exact matches score 1,
// prefixes 0.9, substrings 0.8, and near misses by edit distance less.
// Empty input matches nothing.
func Rank(input string, known []string) []Match {
	token := normalise(input)
	if token == "" {
		return nil
	}

	seen := make(map[string]bool, len(known))
	matches := make([]Match, 0, len(known))
	for _, value := range known {
		if seen[value] {
			continue
		}
		seen[value] = true

		cand := normalise(value)
		var score float64
		switch {
		case cand == token:
			score = 1.0
		case strings.HasPrefix(cand, token):
			score = 0.9
		case len(token) >= 3 && strings.Contains(cand, token):
			score = 0.8
		default:
			dist := levenshtein.ComputeDistance(token, cand)
			if dist > distanceLimit(len(cand)) {
				continue
			}
			score = 0.72 - 0.08*float64(dist)
		}
		if score <= 0 {
			continue
		}
		matches = append(matches, Match{Value: value, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score == matches[j].Score {
			return matches[i].Value < matches[j].Value
		}
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// Top returns at most limit values ranked against input. Empty input
// returns the first limit known values in their given order.
func Top(input string, known []string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	if normalise(input) == "" {
		if len(known) > limit {
			known = known[:limit]
		}
		return append([]string(nil), known...)
	}
	matches := Rank(input, known)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Value
	}
	return out
}

func normalise(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
