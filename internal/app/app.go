// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"chromosearch/internal/appcore"
	"chromosearch/internal/cli"
	"chromosearch/internal/cmdutil"
	"chromosearch/internal/common"
	"chromosearch/internal/external"
	"chromosearch/internal/runutil"
	"chromosearch/internal/writers"
)

// Exit codes
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitRuntime  = 3
	ExitCanceled = 130
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	code := ExitOK
	cmd := cli.NewCommand("chromosearch", func(cmd *cobra.Command, o cli.Options) error {
		log := cmdutil.NewLogger(stderr, o.Quiet, o.Verbose)
		sum, err := appcore.Run(cmd.Context(), outw, log, coreOptions(o, log))
		if err != nil {
			return err
		}
		if sum.Scored == 0 {
			code = o.NoMatchExitCode
		}
		return nil
	})
	cmd.SetOut(outw)
	cmd.SetErr(stderr)
	if len(argv) == 0 {
		argv = []string{"--help"}
	}
	cmd.SetArgs(argv)

	err := cmd.ExecuteContext(parent)
	if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) && err == nil {
		err = e
	}
	if err != nil {
		return exitCode(err, stderr)
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// exitCode reports err on stderr and maps it to the process exit status.
func exitCode(err error, stderr io.Writer) int {
	if errors.Is(err, context.Canceled) {
		return ExitCanceled
	}
	if writers.IsBrokenPipe(err) {
		return ExitOK
	}
	_, _ = fmt.Fprintln(stderr, "error:", err)
	var ce *common.ConfigurationError
	if errors.As(err, &ce) {
		return ExitUsage
	}
	return ExitRuntime
}

func coreOptions(o cli.Options, log *cmdutil.Logger) appcore.Options {
	c := appcore.Options{
		Candidates:     o.Candidates,
		References:     o.References,
		Hits:           o.Hits,
		Genome:         o.Genome,
		Restricted:     o.Restricted(),
		MaxEValue:      o.MaxEValue,
		MaxPairs:       o.MaxPairs,
		Scheme:         o.Scheme(),
		OnAlignError:   o.OnAlignError,
		Mass:           o.Mass,
		Correction:     o.Correction,
		Alpha:          o.Alpha,
		Threads:        o.Threads,
		Progress:       o.Progress,
		Output:         o.Output,
		Header:         o.Header,
		BySignificance: o.Sort == cli.SortSignificance,
		Alignments:     o.Alignments,
		FitReport:      o.FitReport,
		WorkDir:        o.WorkDir,
	}
	if o.Genome != "" {
		c.Predictor = external.Prodigal{Bin: o.ProdigalBin, Stderr: debugWriter(log)}
		c.Searcher = external.BLASTP{
			Bin:       o.BlastpBin,
			MakeDBBin: o.MakeBlastDBBin,
			Threads:   runutil.ResolveWorkers(o.Threads),
			Stderr:    debugWriter(log),
		}
	}
	return c
}

// debugWriter forwards external tool diagnostics only in verbose mode.
func debugWriter(log *cmdutil.Logger) io.Writer {
	if log.Verbose() {
		return log.Writer()
	}
	return nil
}
