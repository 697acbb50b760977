// internal/pairs/generate.go
package pairs

import (
	"chromosearch/internal/common"
	"chromosearch/internal/seqstore"
)

// Pair is one candidate/reference alignment job.
type Pair struct {
	Candidate seqstore.Sequence
	Reference seqstore.Sequence
}

// Link names a candidate/reference combination to align, usually a row of the
// coarse-search table.
type Link struct {
	CandidateID string
	ReferenceID string
}

// Estimate returns how many pairs Generate will emit. In exhaustive mode
// (restriction == nil) this is |candidates| × |references|.
func Estimate(candidates, references *seqstore.Store, restriction []Link) int {
	if restriction != nil {
		return len(restriction)
	}
	return candidates.Len() * references.Len()
}

// Generate builds the pairs to align.
//
// With a restriction, one pair per link is emitted in link order; an id absent
// from its store aborts with *common.LookupError. Without one (nil), the full
// cross product is emitted candidate-major, reference-minor. Callers should
// check Estimate first: the cross product grows quickly.
func Generate(candidates, references *seqstore.Store, restriction []Link) ([]Pair, error) {
	if restriction == nil {
		out := make([]Pair, 0, Estimate(candidates, references, nil))
		candidates.Each(func(c seqstore.Sequence) bool {
			references.Each(func(r seqstore.Sequence) bool {
				out = append(out, Pair{Candidate: c, Reference: r})
				return true
			})
			return true
		})
		return out, nil
	}

	out := make([]Pair, 0, len(restriction))
	for _, l := range restriction {
		c, ok := candidates.Get(l.CandidateID)
		if !ok {
			return nil, &common.LookupError{Stage: common.StagePairs, Side: "candidate", ID: l.CandidateID, Other: l.ReferenceID}
		}
		r, ok := references.Get(l.ReferenceID)
		if !ok {
			return nil, &common.LookupError{Stage: common.StagePairs, Side: "reference", ID: l.ReferenceID, Other: l.CandidateID}
		}
		out = append(out, Pair{Candidate: c, Reference: r})
	}
	return out, nil
}
