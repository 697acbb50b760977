// internal/appcore/core.go
package appcore

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"chromosearch/internal/align"
	"chromosearch/internal/cmdutil"
	"chromosearch/internal/common"
	"chromosearch/internal/derep"
	"chromosearch/internal/external"
	"chromosearch/internal/hits"
	"chromosearch/internal/normalize"
	"chromosearch/internal/output"
	"chromosearch/internal/pairs"
	"chromosearch/internal/pipeline"
	"chromosearch/internal/record"
	"chromosearch/internal/runutil"
	"chromosearch/internal/seqstore"
	"chromosearch/internal/stats"
	"chromosearch/internal/writers"
)

type Options struct {
	Candidates string
	References string
	Hits       string
	Genome     string

	Restricted bool
	MaxEValue  float64
	MaxPairs   int

	Scheme       align.Scheme
	OnAlignError string

	Mass       string
	Correction string
	Alpha      float64

	Threads  int
	Progress bool

	Output         string
	Header         bool
	BySignificance bool // otherwise by normalized score
	Alignments     string
	FitReport      string

	// Used only with Genome.
	WorkDir   string
	Predictor external.GenePredictor
	Searcher  external.CoarseSearcher
}

// Summary reports what a run did.
type Summary struct {
	Candidates int
	References int
	HitRows    int
	Pairs      int
	Skipped    int
	Scored     int
	Estimate   stats.Estimate
	Table      record.Table
}

// Run drives every stage in order and writes the score table to stdout.
// Data flows strictly forward; the first fatal error stops the run.
func Run(ctx context.Context, stdout io.Writer, log *cmdutil.Logger, o Options) (Summary, error) {
	var sum Summary
	if log == nil {
		log = cmdutil.Discard()
	}
	log.Debugf("run %s", log.RunID())

	candPath, hitsPath := o.Candidates, o.Hits
	if o.Genome != "" {
		dir, cleanup, err := workDir(o.WorkDir)
		if err != nil {
			return sum, err
		}
		defer cleanup()
		if candPath, hitsPath, err = runExternal(ctx, log, o, dir); err != nil {
			return sum, err
		}
	}

	// Stage 1: sequence stores
	t0 := time.Now()
	refs, err := seqstore.Parse(o.References)
	if err != nil {
		return sum, err
	}
	cands, err := seqstore.Parse(candPath)
	if err != nil {
		return sum, err
	}
	sum.Candidates, sum.References = cands.Len(), refs.Len()
	log.Debugf("parsed %d candidates, %d references in %s", cands.Len(), refs.Len(), time.Since(t0).Round(time.Millisecond))

	// Stage 2: pairs
	var (
		restriction []pairs.Link
		evalues     map[hits.Key]float64
	)
	if hitsPath != "" {
		rows, err := hits.Load(hitsPath)
		if err != nil {
			return sum, err
		}
		kept := hits.FilterEValue(rows, o.MaxEValue)
		sum.HitRows = len(kept)
		if len(kept) < len(rows) {
			log.Infof("kept %d of %d hit rows with e-value < %g", len(kept), len(rows), o.MaxEValue)
		}
		evalues = hits.EValues(kept)
		if o.Restricted {
			restriction = hits.Links(kept)
		}
	}
	if o.Restricted && hitsPath == "" {
		return sum, common.Configf("restriction-mode", "restricted mode needs a hit table")
	}
	if !o.Restricted {
		n := pairs.Estimate(cands, refs, nil)
		log.Infof("exhaustive mode: %s candidates × %s references = %s pairs",
			humanize.Comma(int64(cands.Len())), humanize.Comma(int64(refs.Len())), humanize.Comma(int64(n)))
		if err := runutil.CheckPairBudget(n, o.MaxPairs); err != nil {
			return sum, err
		}
	}
	ps, err := pairs.Generate(cands, refs, restriction)
	if err != nil {
		return sum, err
	}
	sum.Pairs = len(ps)

	// Stage 3: alignment
	scorer, err := align.New(o.Scheme)
	if err != nil {
		return sum, err
	}
	cfg := pipeline.Config{
		Threads: runutil.ResolveWorkers(o.Threads),
		OnError: o.OnAlignError,
		Log:     log,
	}
	if runutil.ComputeProgress(o.Progress, log.Quiet()) {
		cfg.Progress = log.Writer()
	}
	t0 = time.Now()
	rep, err := pipeline.ScoreBatch(ctx, cfg, ps, scorer)
	if err != nil {
		return sum, err
	}
	sum.Skipped = len(rep.Skipped)
	log.Debugf("aligned %s pairs in %d batches in %s", humanize.Comma(int64(len(ps))), rep.Batches, time.Since(t0).Round(time.Millisecond))
	if sum.Skipped > 0 {
		log.Warnf("%d pair(s) could not be aligned and were skipped", sum.Skipped)
	}
	if o.Alignments != "" {
		if err := writeFile(o.Alignments, func(w io.Writer) error { return output.WriteAlignmentsTSV(w, rep.Results) }); err != nil {
			return sum, err
		}
	}

	// Stage 4: dereplication
	tbl := record.New(derep.Dereplicate(rep.Results))
	sum.Table = tbl
	sum.Scored = len(tbl)
	if len(tbl) == 0 {
		log.Warnf("no candidate produced an alignment score")
		return sum, writers.WriteTable(o.Output, stdout, tbl, o.Header)
	}

	// Stage 5: normalization
	if err := normalize.Apply(tbl, cands, normalize.Options{MassMode: o.Mass, EValues: evalues, Log: log}); err != nil {
		return sum, err
	}

	// Stage 6: significance
	est, err := stats.Annotate(tbl, stats.Options{Method: o.Correction, Alpha: o.Alpha})
	if err != nil {
		return sum, err
	}
	sum.Estimate = est
	for _, w := range est.Warnings {
		log.Warnf("%v", w)
	}
	if est.FitOK {
		log.Debugf("gumbel fit mu=%.6g beta=%.6g after %d iteration(s)", est.Fit.Mu, est.Fit.Beta, est.Fit.Iterations)
	}
	if o.FitReport != "" {
		fr := output.FitReport(log.RunID(), tbl, est)
		if err := writeFile(o.FitReport, func(w io.Writer) error { return output.WriteFitReport(w, fr) }); err != nil {
			return sum, err
		}
	}

	if o.BySignificance {
		tbl.SortBySignificance()
	}
	return sum, writers.WriteTable(o.Output, stdout, tbl, o.Header)
}

func runExternal(ctx context.Context, log *cmdutil.Logger, o Options, dir string) (cands, hitsPath string, err error) {
	if o.Predictor == nil {
		return "", "", fmt.Errorf("no gene predictor configured")
	}
	log.Infof("predicting genes in %s", o.Genome)
	if cands, err = o.Predictor.Predict(ctx, o.Genome, dir); err != nil {
		return "", "", err
	}
	if !o.Restricted {
		return cands, "", nil
	}
	if o.Searcher == nil {
		return "", "", fmt.Errorf("no coarse searcher configured")
	}
	log.Infof("searching predicted proteins against %s", o.References)
	if hitsPath, err = o.Searcher.Search(ctx, cands, o.References, dir); err != nil {
		return "", "", err
	}
	return cands, hitsPath, nil
}

func workDir(dir string) (string, func(), error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", nil, err
		}
		return dir, func() {}, nil
	}
	tmp, err := os.MkdirTemp("", "chromosearch-")
	if err != nil {
		return "", nil, err
	}
	return tmp, func() { _ = os.RemoveAll(tmp) }, nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
