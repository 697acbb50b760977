package output

import "strings"

// Columns is the canonical column order of the score table.
// Keep this as the single source of truth; all writers should use it.
var Columns = []string{
	"candidate_id", "reference_id", "score", "length", "normalized_score",
	"mass", "e_value", "robust_z", "corrected_p_value", "p_value", "significant",
}

// TSVHeader is the header row for text/TSV outputs.
var TSVHeader = strings.Join(Columns, "\t")

// AlignmentsHeader heads the raw per-pair table.
const AlignmentsHeader = "candidate_id\treference_id\tscore"
