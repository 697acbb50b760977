// internal/output/rows.go
package output

import (
	"math"
	"strconv"

	"chromosearch/internal/record"
)

// FormatFloat renders v with the shortest exact representation. NaN is
// written as an empty cell.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatFloat(*v)
}

// FormatRow returns the cells of one candidate in Columns order.
func FormatRow(c *record.Candidate) []string {
	return []string{
		c.Best.CandidateID,
		c.Best.ReferenceID,
		FormatFloat(c.Best.Score),
		strconv.Itoa(c.Length),
		FormatFloat(c.NormalizedScore),
		FormatFloat(c.Mass),
		formatOptional(c.EValue),
		FormatFloat(c.RobustZ),
		FormatFloat(c.CorrectedPValue),
		FormatFloat(c.PValue),
		strconv.FormatBool(c.Significant),
	}
}
