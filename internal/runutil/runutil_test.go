package runutil

import (
	"errors"
	"runtime"
	"strings"
	"testing"

	"chromosearch/internal/common"
)

func TestResolveWorkers(t *testing.T) {
	if got := ResolveWorkers(3); got != 3 {
		t.Fatalf("want 3, got %d", got)
	}
	if got := ResolveWorkers(0); got != runtime.NumCPU() {
		t.Fatalf("0 → NumCPU, got %d", got)
	}
	if got := ResolveWorkers(-4); got < 1 {
		t.Fatalf("negative → at least 1, got %d", got)
	}
}

func TestCheckPairBudget(t *testing.T) {
	if err := CheckPairBudget(1_000_000, 0); err != nil {
		t.Fatalf("0 disables the guard: %v", err)
	}
	if err := CheckPairBudget(10, 10); err != nil {
		t.Fatalf("equal is allowed: %v", err)
	}
	err := CheckPairBudget(2_500_000, 1_000_000)
	var ce *common.ConfigurationError
	if !errors.As(err, &ce) || ce.Option != "max-pairs" {
		t.Fatalf("want ConfigurationError(max-pairs), got %v", err)
	}
	if !strings.Contains(err.Error(), "2,500,000") {
		t.Fatalf("count not humanized: %v", err)
	}
}

func TestComputeProgress(t *testing.T) {
	if !ComputeProgress(true, false) {
		t.Fatalf("progress requested → on")
	}
	if ComputeProgress(true, true) || ComputeProgress(false, false) {
		t.Fatalf("quiet or not requested → off")
	}
}
