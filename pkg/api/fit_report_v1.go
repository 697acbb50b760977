// pkg/api/fit_report_v1.go
package api

// FitReportV1 describes the null-model fit over the normalized-score
// population. It carries everything a plotting tool needs to draw the score
// histogram, the fitted density and a QQ plot.
type FitReportV1 struct {
	RunID     string `json:"run_id"`
	Reliable  bool   `json:"reliable"`
	Converged bool   `json:"converged"`

	Mu         *float64 `json:"mu"`
	Beta       *float64 `json:"beta"`
	Iterations int      `json:"iterations"`

	Median *float64 `json:"median"`
	MAD    *float64 `json:"mad"`

	Method string  `json:"correction_method"`
	Alpha  float64 `json:"alpha"`

	CandidateIDs     []string   `json:"candidate_ids"`
	NormalizedScores []float64  `json:"normalized_scores"`
	PValues          []*float64 `json:"p_values"`

	Warnings []string `json:"warnings,omitempty"`
}
