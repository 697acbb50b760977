// internal/stats/robust.go
package stats

import (
	"math"
	"sort"

	"chromosearch/internal/common"
)

// MADScale makes the median absolute deviation comparable to a standard
// deviation under normality.
const MADScale = 1.4826

// Median returns the median of xs (mean of the two middle values for even
// lengths). xs is not modified. It returns NaN for an empty slice.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// MAD returns the median absolute deviation of xs around med.
func MAD(xs []float64, med float64) float64 {
	dev := make([]float64, len(xs))
	for i, x := range xs {
		dev[i] = math.Abs(x - med)
	}
	return Median(dev)
}

// RobustZ computes (x - median) / (MADScale * MAD) for every score. When the
// MAD is zero the z-scores are NaN and a *common.DegenerateStatisticsWarning
// is returned alongside them.
func RobustZ(xs []float64) (z []float64, median, mad float64, warn error) {
	z = make([]float64, len(xs))
	median = Median(xs)
	mad = MAD(xs, median)
	if len(xs) == 0 || mad == 0 || math.IsNaN(mad) {
		for i := range z {
			z[i] = math.NaN()
		}
		return z, median, mad, &common.DegenerateStatisticsWarning{Reason: "median absolute deviation is 0; robust z-scores undefined"}
	}
	scale := MADScale * mad
	for i, x := range xs {
		z[i] = (x - median) / scale
	}
	return z, median, mad, nil
}
