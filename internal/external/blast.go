// internal/external/blast.go
package external

import (
	"context"
	"io"
	"path/filepath"
	"strconv"
)

// BLASTFormat is the tabular layout requested from blastp. The e-value is
// the 11th column, which is what hits.Read expects of headerless files.
const BLASTFormat = "6 qseqid sseqid pident length mismatch gapopen qstart qend sstart send evalue bitscore"

// BLASTP builds a protein database from the references with makeblastdb and
// searches the candidates against it.
type BLASTP struct {
	Bin       string // "blastp" when empty
	MakeDBBin string // "makeblastdb" when empty
	Threads   int
	Stderr    io.Writer
}

// Search writes <outDir>/hits.tsv.
func (b BLASTP) Search(ctx context.Context, queryPath, referencePath, outDir string) (string, error) {
	bin, mk := b.Bin, b.MakeDBBin
	if bin == "" {
		bin = "blastp"
	}
	if mk == "" {
		mk = "makeblastdb"
	}
	db := filepath.Join(outDir, "references")
	if err := run(ctx, b.Stderr, mk, "-in", referencePath, "-dbtype", "prot", "-out", db); err != nil {
		return "", err
	}
	threads := b.Threads
	if threads < 1 {
		threads = 1
	}
	out := filepath.Join(outDir, "hits.tsv")
	if err := run(ctx, b.Stderr, bin,
		"-db", db,
		"-query", queryPath,
		"-outfmt", BLASTFormat,
		"-num_threads", strconv.Itoa(threads),
		"-out", out,
	); err != nil {
		return "", err
	}
	return out, nil
}
