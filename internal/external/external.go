// Package external wraps the collaborators that run outside the process:
// gene prediction on a genome and the coarse similarity search that produces
// the restriction table. The pipeline only sees the interfaces.
package external

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"chromosearch/internal/common"
)

// GenePredictor translates a genome FASTA into candidate proteins and
// returns the path of the protein FASTA it wrote under outDir.
type GenePredictor interface {
	Predict(ctx context.Context, genomePath, outDir string) (string, error)
}

// CoarseSearcher searches query proteins against a reference protein set and
// returns the path of a BLAST tabular (outfmt 6) hit table under outDir.
type CoarseSearcher interface {
	Search(ctx context.Context, queryPath, referencePath, outDir string) (string, error)
}

// run executes bin with args. Stderr of the tool is copied to logw and
// echoed in the error on failure.
func run(ctx context.Context, logw io.Writer, bin string, args ...string) error {
	var errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = io.Discard
	if logw != nil {
		cmd.Stderr = io.MultiWriter(&errBuf, logw)
	} else {
		cmd.Stderr = &errBuf
	}
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		msg := strings.TrimSpace(errBuf.String())
		if msg != "" {
			return fmt.Errorf("%s: %s: %w: %s", common.StageExternal, bin, err, msg)
		}
		return fmt.Errorf("%s: %s: %w", common.StageExternal, bin, err)
	}
	return nil
}
