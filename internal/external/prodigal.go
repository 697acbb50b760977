// internal/external/prodigal.go
package external

import (
	"context"
	"io"
	"path/filepath"
)

// Prodigal runs the prodigal gene finder and keeps its protein translations.
type Prodigal struct {
	Bin    string    // "prodigal" when empty
	Stderr io.Writer // tool diagnostics; nil drops them
}

// Predict writes <outDir>/candidates.faa.
func (p Prodigal) Predict(ctx context.Context, genomePath, outDir string) (string, error) {
	bin := p.Bin
	if bin == "" {
		bin = "prodigal"
	}
	out := filepath.Join(outDir, "candidates.faa")
	if err := run(ctx, p.Stderr, bin, "-i", genomePath, "-a", out, "-o", filepath.Join(outDir, "genes.gbk"), "-q"); err != nil {
		return "", err
	}
	return out, nil
}
