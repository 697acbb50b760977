// internal/pipeline/aligner.go
package pipeline

import "chromosearch/internal/align"

// Aligner is the minimal capability the pipeline needs.
// *align.Scorer satisfies it, as can fakes in tests.
type Aligner interface {
	Align(candID, candidate, refID, reference string) (align.Result, error)
}
