// internal/cli/command.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"chromosearch/internal/common"
	"chromosearch/internal/version"
)

const usageHeader = `%s – significance-tested protein homology search

Scores candidate proteins against a reference set with Smith–Waterman
(affine gaps), keeps the best hit per candidate, normalizes by length and
fits a Gumbel null model to flag significant candidates.

Version: %s

`

// NewCommand builds the root command. run is called with validated options;
// flag parsing, --config merging and --version are handled here.
func NewCommand(name string, run func(cmd *cobra.Command, o Options) error) *cobra.Command {
	var o Options
	cmd := &cobra.Command{
		Use:           name + " --references ref.faa (--candidates cand.faa [--hits hits.tsv] | --genome genome.fa)",
		Short:         "significance-tested protein homology search",
		Long:          fmt.Sprintf(usageHeader, name, version.Version),
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return common.Configf("", "unexpected argument %q; inputs are given with --candidates/--references/--hits", args[0])
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	noHeader := Register(cmd.Flags(), &o)
	cmd.Flags().SortFlags = false
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &common.ConfigurationError{Msg: err.Error()}
	})
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if o.Version {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", name, version.Version)
			return err
		}
		if o.Config != "" {
			if err := ApplyConfigFile(cmd.Flags(), o.Config); err != nil {
				return err
			}
		}
		o.Header = !*noHeader
		if err := o.Validate(); err != nil {
			return err
		}
		return run(cmd, o)
	}
	return cmd
}
