// pkg/api/candidates_v1.go
package api

// CandidateV1 is the stable JSON schema for one row of the score table.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
// Values that are NaN in the pipeline (unknown mass, degenerate statistics)
// are encoded as null.
type CandidateV1 struct {
	CandidateID     string   `json:"candidate_id"`
	ReferenceID     string   `json:"reference_id"`
	Score           float64  `json:"score"`
	Length          int      `json:"length"`
	NormalizedScore float64  `json:"normalized_score"`
	Mass            *float64 `json:"mass"`
	EValue          *float64 `json:"e_value"`
	RobustZ         *float64 `json:"robust_z"`
	CorrectedPValue *float64 `json:"corrected_p_value"`
	PValue          *float64 `json:"p_value"`
	Significant     bool     `json:"significant"`
}

// AlignmentV1 is one raw pairwise score before dereplication.
type AlignmentV1 struct {
	CandidateID string  `json:"candidate_id"`
	ReferenceID string  `json:"reference_id"`
	Score       float64 `json:"score"`
}
