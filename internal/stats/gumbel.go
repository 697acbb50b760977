// internal/stats/gumbel.go
package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"chromosearch/internal/common"
)

// GumbelFit is a maximum-likelihood fit of a right-skewed Gumbel distribution.
type GumbelFit struct {
	Mu         float64
	Beta       float64
	Iterations int
	Converged  bool
}

// Dist returns the fitted distribution.
func (f GumbelFit) Dist() distuv.GumbelRight {
	return distuv.GumbelRight{Mu: f.Mu, Beta: f.Beta}
}

// PValue is the one-tailed probability of a score at least as high as x.
func (f GumbelFit) PValue(x float64) float64 {
	return f.Dist().Survival(x)
}

const (
	fitTol     = 1e-12
	fitMaxIter = 200
)

// FitGumbel estimates (mu, beta) by maximum likelihood over the whole
// population. The scale solves
//
//	beta = mean(x) - sum(x·exp(-x/beta)) / sum(exp(-x/beta))
//
// whose left-minus-right side is strictly increasing in beta, so a Newton
// iteration safeguarded by bisection always finds the unique root. The
// location then follows in closed form. Fewer than two distinct scores, or
// no convergence, yield a *common.DegenerateStatisticsWarning.
func FitGumbel(xs []float64) (GumbelFit, error) {
	if len(xs) < 2 {
		return GumbelFit{}, &common.DegenerateStatisticsWarning{Reason: fmt.Sprintf("cannot fit Gumbel to %d score(s)", len(xs))}
	}
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return GumbelFit{}, &common.DegenerateStatisticsWarning{Reason: "non-finite score in population"}
		}
	}
	lo, hi := floats.Min(xs), floats.Max(xs)
	span := hi - lo
	if span == 0 {
		return GumbelFit{}, &common.DegenerateStatisticsWarning{Reason: "all scores are identical; Gumbel fit undefined"}
	}
	mean, sd := stat.MeanStdDev(xs, nil)

	// g(b) = b - mean + S1/S0, g'(b) = 1 + Var_w(x)/b², weights w = exp(-(x-lo)/b).
	g := func(b float64) (val, deriv float64) {
		var s0, s1, s2 float64
		for _, x := range xs {
			d := x - lo
			w := math.Exp(-d / b)
			s0 += w
			s1 += d * w
			s2 += d * d * w
		}
		m1 := s1 / s0
		v := s2/s0 - m1*m1
		return b - (mean - lo) + m1, 1 + v/(b*b)
	}

	a, c := span*1e-9, span // g(a) < 0 <= g(c)
	b := sd * math.Sqrt(6) / math.Pi
	if !(b > a && b < c) {
		b = (a + c) / 2
	}
	fit := GumbelFit{}
	for fit.Iterations = 1; fit.Iterations <= fitMaxIter; fit.Iterations++ {
		val, deriv := g(b)
		if val < 0 {
			a = b
		} else {
			c = b
		}
		next := b - val/deriv
		if !(next > a && next < c) {
			next = (a + c) / 2
		}
		if math.Abs(next-b) <= fitTol*math.Max(1, b) {
			b = next
			fit.Converged = true
			break
		}
		b = next
	}
	if !fit.Converged || !(b > 0) {
		return fit, &common.DegenerateStatisticsWarning{Reason: fmt.Sprintf("Gumbel fit did not converge after %d iterations", fitMaxIter)}
	}

	var s0 float64
	for _, x := range xs {
		s0 += math.Exp(-(x - lo) / b)
	}
	fit.Beta = b
	fit.Mu = lo - b*math.Log(s0/float64(len(xs)))
	return fit, nil
}
