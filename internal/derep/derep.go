// Package derep collapses multiple hits per candidate to the best one.
package derep

import (
	"sort"

	"chromosearch/internal/align"
)

// Dereplicate keeps, for every candidate id, the result with the strictly
// highest score; on ties the earliest result wins. The output holds exactly
// one result per distinct candidate id, ordered by score descending with ties
// in first-seen order.
func Dereplicate(results []align.Result) []align.Result {
	idx := make(map[string]int, len(results))
	best := make([]align.Result, 0, len(results))
	for _, r := range results {
		i, seen := idx[r.CandidateID]
		if !seen {
			idx[r.CandidateID] = len(best)
			best = append(best, r)
			continue
		}
		if r.Score > best[i].Score {
			best[i] = r
		}
	}
	sort.SliceStable(best, func(i, j int) bool { return best[i].Score > best[j].Score })
	return best
}
