// internal/runutil/runutil.go
package runutil

import (
	"runtime"

	"github.com/dustin/go-humanize"

	"chromosearch/internal/common"
)

// ResolveWorkers returns the effective pool size. Values <= 0 mean one
// worker per CPU.
func ResolveWorkers(requested int) int {
	if requested > 0 {
		return requested
	}
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}

// CheckPairBudget refuses an exhaustive run whose cross product exceeds
// maxPairs. maxPairs <= 0 disables the guard.
func CheckPairBudget(estimate, maxPairs int) error {
	if maxPairs <= 0 || estimate <= maxPairs {
		return nil
	}
	return common.Configf("max-pairs", "exhaustive mode would score %s pairs, above the limit of %s; supply a restriction table or raise --max-pairs",
		humanize.Comma(int64(estimate)), humanize.Comma(int64(maxPairs)))
}

// ComputeProgress tells the pipeline whether to draw a progress bar:
// only when asked for and not silenced.
func ComputeProgress(progress, quiet bool) bool {
	return progress && !quiet
}
