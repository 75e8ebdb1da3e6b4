// Package match ranks near-miss name candidates by edit distance. It is the
// secondary step of reconciliation: exact matching happens on identity keys,
// and only candidates sharing a birthday are ever ranked here, which keeps
// the comparison set small.
package match

import (
	"sort"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Distance returns the unit-cost Levenshtein distance between two strings.
// No normalization is performed; callers pass already-normalized strings.
func Distance(a, b string) int {
	return levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
}

// Candidate is a name to rank: Display is what the caller shows, Normalized
// is what distances are computed against.
type Candidate struct {
	Display    string
	Normalized string
}

// Rank orders candidates by ascending distance from name (itself already
// normalized), ties broken lexicographically by normalized form, and returns
// the display names of the first max distinct candidates. Distinctness is
// judged on the normalized form, so "Jon  Smith" and "jon smith" count once.
func Rank(name string, candidates []Candidate, max int) []string {
	if max <= 0 || len(candidates) == 0 {
		return nil
	}

	type scored struct {
		Candidate
		distance int
	}
	ranked := make([]scored, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c.Normalized]; dup {
			continue
		}
		seen[c.Normalized] = struct{}{}
		ranked = append(ranked, scored{Candidate: c, distance: Distance(name, c.Normalized)})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].distance != ranked[j].distance {
			return ranked[i].distance < ranked[j].distance
		}
		return ranked[i].Normalized < ranked[j].Normalized
	})

	if len(ranked) > max {
		ranked = ranked[:max]
	}
	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = s.Display
	}
	return out
}
