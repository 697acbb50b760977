// internal/output/json.go
package output

import (
	"io"
	"math"

	"chromosearch/internal/jsonutil"
	"chromosearch/internal/record"
	"chromosearch/pkg/api"
)

// finite returns nil for NaN so encoding/json can represent it.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ToAPICandidate converts a record to the stable wire schema (v1).
func ToAPICandidate(c *record.Candidate) api.CandidateV1 {
	v := api.CandidateV1{
		CandidateID:     c.Best.CandidateID,
		ReferenceID:     c.Best.ReferenceID,
		Score:           c.Best.Score,
		Length:          c.Length,
		NormalizedScore: c.NormalizedScore,
		Mass:            finite(c.Mass),
		RobustZ:         finite(c.RobustZ),
		CorrectedPValue: finite(c.CorrectedPValue),
		PValue:          finite(c.PValue),
		Significant:     c.Significant,
	}
	if c.EValue != nil {
		v.EValue = finite(*c.EValue)
	}
	return v
}

func toAPICandidates(t record.Table) []api.CandidateV1 {
	out := make([]api.CandidateV1, 0, len(t))
	for _, c := range t {
		out = append(out, ToAPICandidate(c))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 candidates (pretty-indented).
func WriteJSON(w io.Writer, t record.Table) error {
	return jsonutil.EncodePretty(w, toAPICandidates(t))
}
