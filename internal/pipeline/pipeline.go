// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/sync/errgroup"

	"chromosearch/internal/align"
	"chromosearch/internal/cmdutil"
	"chromosearch/internal/common"
	"chromosearch/internal/pairs"
)

// Failure policies for pairs that cannot be aligned.
const (
	OnErrorSkip = "skip" // drop the pair, log a warning
	OnErrorFail = "fail" // abort the alignment stage
)

// Config controls the alignment stage.
type Config struct {
	Threads  int    // worker pool size (>=1)
	OnError  string // OnErrorSkip (default) | OnErrorFail
	Progress io.Writer
	Log      *cmdutil.Logger
}

// Report is the outcome of ScoreBatch.
type Report struct {
	Results []align.Result
	Skipped []*common.AlignmentError
	Batches int
}

// Partition splits n items into k contiguous, nearly equal [start, end)
// ranges, k = min(threads, n).
func Partition(n, threads int) [][2]int {
	if n == 0 {
		return nil
	}
	k := threads
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	out := make([][2]int, k)
	for b := 0; b < k; b++ {
		out[b] = [2]int{b * n / k, (b + 1) * n / k}
	}
	return out
}

// ScoreBatch aligns every pair. Pairs are cut into contiguous batches, one per
// worker; each worker owns its batch and its output slot, so nothing is
// shared. Results keep pair order within a batch and batch order overall.
//
// A pair that fails to align is skipped with a warning (OnErrorSkip) or fails
// the whole stage (OnErrorFail). Any other worker error fails the stage; no
// partial result set is ever returned with a nil error.
func ScoreBatch(ctx context.Context, cfg Config, ps []pairs.Pair, al Aligner) (Report, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if cfg.OnError == "" {
		cfg.OnError = OnErrorSkip
	}
	if cfg.OnError != OnErrorSkip && cfg.OnError != OnErrorFail {
		return Report{}, common.Configf("on-align-error", "unknown policy %q (want skip | fail)", cfg.OnError)
	}
	log := cfg.Log
	if log == nil {
		log = cmdutil.Discard()
	}

	parts := Partition(len(ps), cfg.Threads)
	type slot struct {
		results []align.Result
		skipped []*common.AlignmentError
	}
	slots := make([]slot, len(parts))

	var bar *pb.ProgressBar
	if cfg.Progress != nil && len(ps) > 0 {
		bar = pb.New(len(ps))
		bar.SetWriter(cfg.Progress)
		bar.Start()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)
	for b, rng := range parts {
		b, rng := b, rng
		g.Go(func() error {
			// Batches are not interrupted once started.
			if err := gctx.Err(); err != nil {
				return err
			}
			batch := ps[rng[0]:rng[1]]
			out := slot{results: make([]align.Result, 0, len(batch))}
			for _, p := range batch {
				res, err := al.Align(p.Candidate.ID, p.Candidate.Residues, p.Reference.ID, p.Reference.Residues)
				if bar != nil {
					bar.Increment()
				}
				if err != nil {
					var ae *common.AlignmentError
					if !errors.As(err, &ae) {
						return fmt.Errorf("batch %d: %w", b, err)
					}
					if cfg.OnError == OnErrorFail {
						return ae
					}
					out.skipped = append(out.skipped, ae)
					continue
				}
				out.results = append(out.results, res)
			}
			slots[b] = out
			return nil
		})
	}
	err := g.Wait()
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return Report{}, err
	}

	rep := Report{Batches: len(parts), Results: make([]align.Result, 0, len(ps))}
	for _, s := range slots {
		rep.Results = append(rep.Results, s.results...)
		rep.Skipped = append(rep.Skipped, s.skipped...)
	}
	for _, ae := range rep.Skipped {
		log.Warnf("skipping pair: %v", ae)
	}
	log.Debugf("scored %d pairs in %d batches (%d skipped)", len(rep.Results), rep.Batches, len(rep.Skipped))
	return rep, nil
}
