// internal/stats/estimate.go
package stats

import (
	"errors"
	"fmt"
	"math"

	"chromosearch/internal/common"
	"chromosearch/internal/record"
)

// Options selects the correction procedure.
type Options struct {
	Method string  // DefaultMethod when empty
	Alpha  float64 // DefaultAlpha when zero
}

// Estimate is the population-level significance result. Per-candidate slices
// are in input order.
type Estimate struct {
	Median  float64
	MAD     float64
	RobustZ []float64

	Fit       GumbelFit
	FitOK     bool
	PValues   []float64 // raw one-tailed, NaN when the fit failed
	Corrected []float64
	Reject    []bool

	Method string
	Alpha  float64

	// Warnings are *common.DegenerateStatisticsWarning values. When any is
	// present the significance columns should not be trusted.
	Warnings []error
}

// Reliable reports whether no degenerate condition was hit.
func (e Estimate) Reliable() bool { return len(e.Warnings) == 0 }

// Run computes robust z-scores, fits the Gumbel null model once over the
// whole population, derives one-tailed p-values and corrects them.
//
// Degenerate populations are reported through Estimate.Warnings, not as an
// error; the error return is reserved for bad options and an empty
// population, which abort the run.
func Run(scores []float64, opt Options) (Estimate, error) {
	if opt.Method == "" {
		opt.Method = DefaultMethod
	}
	if opt.Alpha == 0 {
		opt.Alpha = DefaultAlpha
	}
	if err := ValidateMethod(opt.Method); err != nil {
		return Estimate{}, err
	}
	if !(opt.Alpha > 0 && opt.Alpha < 1) {
		return Estimate{}, common.Configf("alpha", "alpha must be in (0, 1), got %g", opt.Alpha)
	}
	if len(scores) == 0 {
		return Estimate{}, fmt.Errorf("%s: empty score population", common.StageStats)
	}

	n := len(scores)
	est := Estimate{Method: opt.Method, Alpha: opt.Alpha}
	var warn error
	est.RobustZ, est.Median, est.MAD, warn = RobustZ(scores)
	if warn != nil {
		est.Warnings = append(est.Warnings, warn)
	}

	est.PValues = nanSlice(n)
	est.Corrected = nanSlice(n)
	est.Reject = make([]bool, n)

	fit, err := FitGumbel(scores)
	est.Fit = fit
	if err != nil {
		var dw *common.DegenerateStatisticsWarning
		if !errors.As(err, &dw) {
			return Estimate{}, err
		}
		est.Warnings = append(est.Warnings, dw)
		return est, nil
	}
	est.FitOK = true
	for i, x := range scores {
		est.PValues[i] = fit.PValue(x)
	}
	corr, err := Correct(est.PValues, opt.Method, opt.Alpha)
	if err != nil {
		return Estimate{}, err
	}
	est.Corrected, est.Reject = corr.Corrected, corr.Reject
	return est, nil
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// Annotate runs the estimator over the table's normalized scores and writes
// the per-candidate columns back in place.
func Annotate(t record.Table, opt Options) (Estimate, error) {
	est, err := Run(t.NormalizedScores(), opt)
	if err != nil {
		return est, err
	}
	for i, c := range t {
		c.RobustZ = est.RobustZ[i]
		c.PValue = est.PValues[i]
		c.CorrectedPValue = est.Corrected[i]
		c.Significant = est.Reject[i]
	}
	return est, nil
}
