// internal/output/fit.go
package output

import (
	"io"

	"chromosearch/internal/jsonutil"
	"chromosearch/internal/record"
	"chromosearch/internal/stats"
	"chromosearch/pkg/api"
)

// FitReport assembles the v1 fit report. t must be the table the estimate
// was computed from, in the same order.
func FitReport(runID string, t record.Table, est stats.Estimate) api.FitReportV1 {
	r := api.FitReportV1{
		RunID:            runID,
		Reliable:         est.Reliable(),
		Converged:        est.FitOK && est.Fit.Converged,
		Iterations:       est.Fit.Iterations,
		Median:           finite(est.Median),
		MAD:              finite(est.MAD),
		Method:           est.Method,
		Alpha:            est.Alpha,
		CandidateIDs:     make([]string, len(t)),
		NormalizedScores: t.NormalizedScores(),
		PValues:          make([]*float64, len(est.PValues)),
	}
	if est.FitOK {
		r.Mu, r.Beta = finite(est.Fit.Mu), finite(est.Fit.Beta)
	}
	for i, c := range t {
		r.CandidateIDs[i] = c.ID()
	}
	for i, p := range est.PValues {
		r.PValues[i] = finite(p)
	}
	for _, w := range est.Warnings {
		r.Warnings = append(r.Warnings, w.Error())
	}
	return r
}

// WriteFitReport encodes the report as indented JSON.
func WriteFitReport(w io.Writer, r api.FitReportV1) error {
	return jsonutil.EncodePretty(w, r)
}
