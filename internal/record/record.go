// internal/record/record.go
package record

import (
	"math"
	"sort"

	"chromosearch/internal/align"
)

// Candidate accumulates everything known about one candidate protein. It is
// created by dereplication and filled in place by the later stages.
type Candidate struct {
	Best align.Result

	Length          int
	Mass            float64 // NaN when a residue has no known mass
	NormalizedScore float64
	EValue          *float64 // nil when the coarse search gave none

	RobustZ         float64 // NaN when the population is degenerate
	PValue          float64 // raw one-tailed p-value
	CorrectedPValue float64
	Significant     bool
}

// ID is the primary key of the record.
func (c *Candidate) ID() string { return c.Best.CandidateID }

// Table is the ordered pipeline artifact.
type Table []*Candidate

// New wraps dereplicated results, keeping their order.
func New(best []align.Result) Table {
	t := make(Table, len(best))
	for i, r := range best {
		t[i] = &Candidate{
			Best:            r,
			Mass:            math.NaN(),
			NormalizedScore: math.NaN(),
			RobustZ:         math.NaN(),
			PValue:          math.NaN(),
			CorrectedPValue: math.NaN(),
		}
	}
	return t
}

// NormalizedScores returns the normalized score column in table order.
func (t Table) NormalizedScores() []float64 {
	out := make([]float64, len(t))
	for i, c := range t {
		out[i] = c.NormalizedScore
	}
	return out
}

// SortByNormalizedScore orders by normalized score descending; ties keep
// their current order.
func (t Table) SortByNormalizedScore() {
	sort.SliceStable(t, func(i, j int) bool {
		return t[i].NormalizedScore > t[j].NormalizedScore
	})
}

// SortBySignificance orders by corrected p-value ascending, then normalized
// score descending. NaN p-values sort last; ties keep their current order.
func (t Table) SortBySignificance() {
	sort.SliceStable(t, func(i, j int) bool {
		a, b := t[i], t[j]
		an, bn := math.IsNaN(a.CorrectedPValue), math.IsNaN(b.CorrectedPValue)
		if an != bn {
			return bn
		}
		if !an && a.CorrectedPValue != b.CorrectedPValue {
			return a.CorrectedPValue < b.CorrectedPValue
		}
		return a.NormalizedScore > b.NormalizedScore
	})
}
