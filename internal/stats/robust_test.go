package stats

import (
	"errors"
	"math"
	"testing"

	"chromosearch/internal/common"
)

func TestMedianAndMAD(t *testing.T) {
	xs := []float64{3, 1, 2, 10}
	if got := Median(xs); got != 2.5 {
		t.Fatalf("median=%v want 2.5", got)
	}
	if xs[0] != 3 {
		t.Fatalf("Median modified its input")
	}
	// deviations from 2.5: 0.5 1.5 0.5 7.5 -> median 1.0
	if got := MAD(xs, 2.5); got != 1.0 {
		t.Fatalf("mad=%v want 1", got)
	}
	if !math.IsNaN(Median(nil)) {
		t.Fatalf("median of empty should be NaN")
	}
}

func TestRobustZ(t *testing.T) {
	z, med, mad, warn := RobustZ([]float64{1, 2, 3, 4, 100})
	if warn != nil {
		t.Fatalf("unexpected warning: %v", warn)
	}
	if med != 3 || mad != 1 {
		t.Fatalf("median=%v mad=%v", med, mad)
	}
	want := []float64{-2 / MADScale, -1 / MADScale, 0, 1 / MADScale, 97 / MADScale}
	for i := range want {
		if math.Abs(z[i]-want[i]) > 1e-12 {
			t.Fatalf("z[%d]=%v want %v", i, z[i], want[i])
		}
	}
}

func TestRobustZZeroMAD(t *testing.T) {
	z, _, mad, warn := RobustZ([]float64{5, 5, 5, 9})
	if mad != 0 {
		t.Fatalf("mad=%v want 0", mad)
	}
	var dw *common.DegenerateStatisticsWarning
	if !errors.As(warn, &dw) {
		t.Fatalf("want DegenerateStatisticsWarning, got %v", warn)
	}
	for i, v := range z {
		if !math.IsNaN(v) {
			t.Fatalf("z[%d]=%v want NaN", i, v)
		}
	}
}
