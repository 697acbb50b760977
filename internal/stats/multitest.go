// internal/stats/multitest.go
package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"chromosearch/internal/common"
)

// Multiple-testing correction methods. Names follow statsmodels'
// multipletests so results can be compared one to one.
const (
	Bonferroni    = "bonferroni"
	Sidak         = "sidak"
	HolmSidak     = "holm-sidak"
	Holm          = "holm"
	SimesHochberg = "simes-hochberg"
	Hommel        = "hommel"
	FDRBH         = "fdr_bh"
	FDRBY         = "fdr_by"
	FDRTSBH       = "fdr_tsbh"
	FDRTSBKY      = "fdr_tsbky"

	DefaultMethod = FDRBH
	DefaultAlpha  = 0.05
)

// Methods lists every supported correction.
func Methods() []string {
	return []string{Bonferroni, Sidak, HolmSidak, Holm, SimesHochberg, Hommel, FDRBH, FDRBY, FDRTSBH, FDRTSBKY}
}

// ValidateMethod returns a *common.ConfigurationError for unknown names.
func ValidateMethod(method string) error {
	for _, m := range Methods() {
		if m == method {
			return nil
		}
	}
	return common.Configf("correction", "unknown correction method %q (want one of %s)", method, strings.Join(Methods(), ", "))
}

// Correction holds corrected p-values and reject decisions in input order.
type Correction struct {
	Method    string
	Alpha     float64
	Corrected []float64
	Reject    []bool
}

// Correct adjusts p for multiple testing with the named method at
// family-wise level alpha. Corrected values are capped at 1.
func Correct(p []float64, method string, alpha float64) (Correction, error) {
	if err := ValidateMethod(method); err != nil {
		return Correction{}, err
	}
	if !(alpha > 0 && alpha < 1) {
		return Correction{}, common.Configf("alpha", "alpha must be in (0, 1), got %g", alpha)
	}
	for i, v := range p {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return Correction{}, fmt.Errorf("%s: p-value %d out of range: %g", common.StageStats, i, v)
		}
	}
	n := len(p)
	out := Correction{Method: method, Alpha: alpha, Corrected: make([]float64, n), Reject: make([]bool, n)}
	if n == 0 {
		return out, nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return p[order[a]] < p[order[b]] })
	ps := make([]float64, n)
	for i, o := range order {
		ps[i] = p[o]
	}

	var corr []float64
	var rej []bool
	switch method {
	case Bonferroni:
		corr, rej = bonferroni(ps, alpha)
	case Sidak:
		corr, rej = sidak(ps, alpha)
	case HolmSidak:
		corr, rej = holmSidak(ps, alpha)
	case Holm:
		corr, rej = holm(ps, alpha)
	case SimesHochberg:
		corr, rej = simesHochberg(ps, alpha)
	case Hommel:
		corr, rej = hommel(ps, alpha)
	case FDRBH:
		corr, rej = fdr(ps, alpha, false)
	case FDRBY:
		corr, rej = fdr(ps, alpha, true)
	case FDRTSBH:
		corr, rej = fdrTwoStage(ps, alpha, false)
	case FDRTSBKY:
		corr, rej = fdrTwoStage(ps, alpha, true)
	}
	for i, o := range order {
		out.Corrected[o] = math.Min(corr[i], 1)
		out.Reject[o] = rej[i]
	}
	return out, nil
}

// All helpers below take p sorted ascending.

func bonferroni(p []float64, alpha float64) ([]float64, []bool) {
	n := float64(len(p))
	corr, rej := make([]float64, len(p)), make([]bool, len(p))
	for i, v := range p {
		corr[i] = v * n
		rej[i] = v <= alpha/n
	}
	return corr, rej
}

func sidak(p []float64, alpha float64) ([]float64, []bool) {
	n := float64(len(p))
	cut := 1 - math.Pow(1-alpha, 1/n)
	corr, rej := make([]float64, len(p)), make([]bool, len(p))
	for i, v := range p {
		corr[i] = -math.Expm1(n * math.Log1p(-v))
		rej[i] = v <= cut
	}
	return corr, rej
}

// stepDownReject rejects the leading run of hypotheses that pass.
func stepDownReject(p []float64, pass func(i int) bool) []bool {
	rej := make([]bool, len(p))
	for i := range p {
		if !pass(i) {
			break
		}
		rej[i] = true
	}
	return rej
}

// stepUpReject rejects everything up to the last hypothesis that passes.
func stepUpReject(p []float64, pass func(i int) bool) []bool {
	rej := make([]bool, len(p))
	last := -1
	for i := range p {
		if pass(i) {
			last = i
		}
	}
	for i := 0; i <= last; i++ {
		rej[i] = true
	}
	return rej
}

func cumMax(x []float64) {
	for i := 1; i < len(x); i++ {
		if x[i-1] > x[i] {
			x[i] = x[i-1]
		}
	}
}

func revCumMin(x []float64) {
	for i := len(x) - 2; i >= 0; i-- {
		if x[i+1] < x[i] {
			x[i] = x[i+1]
		}
	}
}

func holmSidak(p []float64, alpha float64) ([]float64, []bool) {
	n := len(p)
	corr := make([]float64, n)
	for i, v := range p {
		corr[i] = -math.Expm1(float64(n-i) * math.Log1p(-v))
	}
	cumMax(corr)
	rej := stepDownReject(p, func(i int) bool {
		return p[i] <= 1-math.Pow(1-alpha, 1/float64(n-i))
	})
	return corr, rej
}

func holm(p []float64, alpha float64) ([]float64, []bool) {
	n := len(p)
	corr := make([]float64, n)
	for i, v := range p {
		corr[i] = v * float64(n-i)
	}
	cumMax(corr)
	rej := stepDownReject(p, func(i int) bool { return p[i] <= alpha/float64(n-i) })
	return corr, rej
}

func simesHochberg(p []float64, alpha float64) ([]float64, []bool) {
	n := len(p)
	corr := make([]float64, n)
	for i, v := range p {
		corr[i] = v * float64(n-i)
	}
	revCumMin(corr)
	rej := stepUpReject(p, func(i int) bool { return p[i] <= alpha/float64(n-i) })
	return corr, rej
}

func hommel(p []float64, alpha float64) ([]float64, []bool) {
	n := len(p)
	a := append([]float64(nil), p...)
	for m := n; m > 1; m-- {
		tail := n - m
		cim := math.Inf(1)
		for k := 1; k <= m; k++ {
			if v := float64(m) * p[tail+k-1] / float64(k); v < cim {
				cim = v
			}
		}
		for i := tail; i < n; i++ {
			a[i] = math.Max(a[i], cim)
		}
		for i := 0; i < tail; i++ {
			a[i] = math.Max(a[i], math.Min(float64(m)*p[i], cim))
		}
	}
	rej := make([]bool, n)
	for i, v := range a {
		rej[i] = v <= alpha
	}
	return a, rej
}

// fdr is Benjamini–Hochberg, or Benjamini–Yekutieli when dependent is set.
func fdr(p []float64, alpha float64, dependent bool) ([]float64, []bool) {
	n := len(p)
	cm := 1.0
	if dependent {
		cm = 0
		for k := 1; k <= n; k++ {
			cm += 1 / float64(k)
		}
	}
	ecdf := func(i int) float64 { return float64(i+1) / float64(n) / cm }
	corr := make([]float64, n)
	for i, v := range p {
		corr[i] = v / ecdf(i)
	}
	revCumMin(corr)
	for i := range corr {
		corr[i] = math.Min(corr[i], 1)
	}
	rej := stepUpReject(p, func(i int) bool { return p[i] <= ecdf(i)*alpha })
	return corr, rej
}

// fdrTwoStage is the adaptive two-stage FDR procedure (one iteration), with
// the Benjamini–Krieger–Yekutieli alpha adjustment when bky is set.
func fdrTwoStage(p []float64, alpha float64, bky bool) ([]float64, []bool) {
	n := len(p)
	fact := 1.0
	if bky {
		fact = 1 + alpha
	}
	alpha1 := alpha / fact
	corr, rej := fdr(p, alpha1, false)
	r1 := count(rej)
	if r1 == 0 || r1 == n {
		for i := range corr {
			corr[i] *= fact
		}
		return corr, rej
	}
	n0 := float64(n - r1)
	alpha2 := alpha1 * float64(n) / n0
	corr, rej = fdr(p, alpha2, false)
	for i := range corr {
		corr[i] *= n0 / float64(n)
		if bky {
			corr[i] *= 1 + alpha
		}
	}
	return corr, rej
}

func count(b []bool) int {
	n := 0
	for _, v := range b {
		if v {
			n++
		}
	}
	return n
}
