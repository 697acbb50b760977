// internal/cli/options.go
package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"chromosearch/internal/align"
	"chromosearch/internal/common"
	"chromosearch/internal/normalize"
	"chromosearch/internal/pipeline"
	"chromosearch/internal/stats"
	"chromosearch/internal/writers"
)

// Table orders
const (
	SortScore        = "score"        // normalized score, descending
	SortSignificance = "significance" // corrected p-value, ascending
)

// Restriction modes
const (
	RestrictAuto       = "auto" // restricted when a hit table is available
	RestrictRestricted = "restricted"
	RestrictExhaustive = "exhaustive"
)

// Options holds all CLI flags.
type Options struct {
	// Input
	Candidates string
	References string
	Hits       string
	Genome     string

	// Pairing
	RestrictionMode string
	MaxEValue       float64
	MaxPairs        int

	// Scoring
	Substitution string
	Matrix       string
	Match        float64
	Mismatch     float64
	GapOpen      float64
	GapExtend    float64
	OnAlignError string

	// Normalization / significance
	Mass       string
	Correction string
	Alpha      float64

	// Performance
	Threads  int
	Progress bool

	// Output
	Output          string
	Sort            string
	Header          bool // true unless --no-header
	Alignments      string
	FitReport       string
	NoMatchExitCode int

	// External tools
	ProdigalBin    string
	BlastpBin      string
	MakeBlastDBBin string
	WorkDir        string

	// Misc
	Config  string
	Quiet   bool
	Verbose bool
	Version bool
}

// Register wires every flag onto fs and returns a pointer to the “no-header”
// bool; the caller sets Options.Header = !noHeader after parsing.
func Register(fs *pflag.FlagSet, o *Options) *bool {
	def := align.DefaultScheme()

	fs.StringVarP(&o.Candidates, "candidates", "c", "", "candidate protein FASTA (plain or gzip, '-' for STDIN)")
	fs.StringVarP(&o.References, "references", "r", "", "reference protein FASTA [*]")
	fs.StringVarP(&o.Hits, "hits", "H", "", "coarse-search hit table (BLAST outfmt 6 TSV, or CSV/TSV with header)")
	fs.StringVarP(&o.Genome, "genome", "g", "", "genome FASTA; runs gene prediction and BLASTP instead of --candidates/--hits")

	fs.StringVar(&o.RestrictionMode, "restriction-mode", RestrictAuto, "pairing: auto | restricted | exhaustive")
	fs.Float64Var(&o.MaxEValue, "max-evalue", 0.05, "drop hit rows with e-value >= this (0 = keep all)")
	fs.IntVar(&o.MaxPairs, "max-pairs", 0, "refuse exhaustive runs above this many pairs (0 = unlimited)")

	fs.StringVar(&o.Substitution, "substitution", def.Substitution, "substitution scheme: matrix | linear")
	fs.StringVar(&o.Matrix, "matrix", def.Matrix, "substitution matrix: "+strings.Join(align.MatrixNames(), " | "))
	fs.Float64Var(&o.Match, "match", def.Match, "linear scheme match score")
	fs.Float64Var(&o.Mismatch, "mismatch", def.Mismatch, "linear scheme mismatch score")
	fs.Float64Var(&o.GapOpen, "gap-open", def.GapOpen, "score of the first residue of a gap (<= 0)")
	fs.Float64Var(&o.GapExtend, "gap-extend", def.GapExtend, "score of each further gap residue (<= 0)")
	fs.StringVar(&o.OnAlignError, "on-align-error", pipeline.OnErrorSkip, "unalignable pair policy: skip | fail")

	fs.StringVar(&o.Mass, "mass", normalize.MassAverage, "molecular weight: average | monoisotopic")
	fs.StringVar(&o.Correction, "correction", stats.DefaultMethod, "multiple-testing correction: "+strings.Join(stats.Methods(), " | "))
	fs.Float64Var(&o.Alpha, "alpha", stats.DefaultAlpha, "family-wise significance level")

	fs.IntVarP(&o.Threads, "threads", "j", 0, "worker threads (0 = all CPUs)")
	fs.BoolVar(&o.Progress, "progress", false, "draw an alignment progress bar on STDERR")

	fs.StringVarP(&o.Output, "output", "o", "tsv", "output format: "+strings.Join(writers.Formats(), " | "))
	fs.StringVar(&o.Sort, "sort", SortScore, "row order: score | significance")
	noHeader := fs.Bool("no-header", false, "suppress header line in tsv/csv")
	fs.StringVar(&o.Alignments, "alignments", "", "also write every raw pair score (TSV) to this file")
	fs.StringVar(&o.FitReport, "fit-report", "", "also write the null-model fit report (JSON) to this file")
	fs.IntVar(&o.NoMatchExitCode, "no-match-exit-code", 1, "exit code when no candidate is scored")

	fs.StringVar(&o.ProdigalBin, "prodigal", "prodigal", "prodigal executable (with --genome)")
	fs.StringVar(&o.BlastpBin, "blastp", "blastp", "blastp executable (with --genome)")
	fs.StringVar(&o.MakeBlastDBBin, "makeblastdb", "makeblastdb", "makeblastdb executable (with --genome)")
	fs.StringVar(&o.WorkDir, "work-dir", "", "directory for external tool outputs (default: temporary, removed afterwards)")

	fs.StringVar(&o.Config, "config", "", "TOML file with option defaults; flags given on the command line win")
	fs.BoolVarP(&o.Quiet, "quiet", "q", false, "suppress warnings and progress")
	fs.BoolVarP(&o.Verbose, "verbose", "v", false, "log stage timings and counts")
	fs.BoolVarP(&o.Version, "version", "V", false, "print version and exit")
	return noHeader
}

// Scheme assembles the alignment scheme from the scoring flags.
func (o Options) Scheme() align.Scheme {
	return align.Scheme{
		Substitution: o.Substitution,
		Matrix:       strings.ToUpper(o.Matrix),
		Match:        o.Match,
		Mismatch:     o.Mismatch,
		GapOpen:      o.GapOpen,
		GapExtend:    o.GapExtend,
	}
}

// Restricted resolves the restriction mode against the inputs.
func (o Options) Restricted() bool {
	switch o.RestrictionMode {
	case RestrictRestricted:
		return true
	case RestrictExhaustive:
		return false
	}
	return o.Hits != "" || o.Genome != ""
}

// Validate checks the options before any work starts. All failures are
// *common.ConfigurationError.
func (o Options) Validate() error {
	switch {
	case o.Genome != "" && o.Candidates != "":
		return common.Configf("genome", "conflicts with --candidates")
	case o.Genome != "" && o.Hits != "":
		return common.Configf("genome", "conflicts with --hits (the hit table is produced by BLASTP)")
	case o.Genome == "" && o.Candidates == "":
		return common.Configf("candidates", "provide --candidates or --genome")
	case o.References == "":
		return common.Configf("references", "a reference FASTA is required")
	case o.References == "-" && (o.Candidates == "-" || o.Hits == "-"):
		return common.Configf("references", "only one input can be read from STDIN")
	case o.Candidates == "-" && o.Hits == "-":
		return common.Configf("hits", "only one input can be read from STDIN")
	}
	switch o.RestrictionMode {
	case RestrictAuto, RestrictExhaustive:
	case RestrictRestricted:
		if o.Hits == "" && o.Genome == "" {
			return common.Configf("restriction-mode", "restricted mode needs --hits or --genome")
		}
	default:
		return common.Configf("restriction-mode", "invalid value %q (want auto | restricted | exhaustive)", o.RestrictionMode)
	}
	if o.MaxEValue < 0 {
		return common.Configf("max-evalue", "must be >= 0")
	}
	if o.MaxPairs < 0 {
		return common.Configf("max-pairs", "must be >= 0")
	}
	if err := o.Scheme().Validate(); err != nil {
		return err
	}
	if o.OnAlignError != pipeline.OnErrorSkip && o.OnAlignError != pipeline.OnErrorFail {
		return common.Configf("on-align-error", "invalid value %q (want skip | fail)", o.OnAlignError)
	}
	if o.Mass != normalize.MassAverage && o.Mass != normalize.MassMonoisotopic {
		return common.Configf("mass", "invalid value %q (want average | monoisotopic)", o.Mass)
	}
	if err := stats.ValidateMethod(o.Correction); err != nil {
		return err
	}
	if !(o.Alpha > 0 && o.Alpha < 1) {
		return common.Configf("alpha", "must be in (0, 1), got %g", o.Alpha)
	}
	if o.Threads < 0 {
		return common.Configf("threads", "must be >= 0")
	}
	if o.Sort != SortScore && o.Sort != SortSignificance {
		return common.Configf("sort", "invalid value %q (want score | significance)", o.Sort)
	}
	if _, ok := writers.TableWriters[o.Output]; !ok {
		return common.Configf("output", "invalid format %q (want %s)", o.Output, strings.Join(writers.Formats(), " | "))
	}
	return nil
}
