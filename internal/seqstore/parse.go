// internal/seqstore/parse.go
package seqstore

import (
	"errors"
	"io"
	"strconv"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"

	"chromosearch/internal/common"
)

// Parse reads a FASTA file (plain, gzip-compressed, or "-" for stdin) into a
// Store. The id of a record is the first whitespace-delimited token of its
// header. An empty file, a file without headers, or a repeated id yields a
// *common.ParseError.
func Parse(path string) (*Store, error) {
	// seq.Unlimit accepts any residue letter, including stop symbols and
	// ambiguity codes; the aligner decides what it can score.
	r, err := fastx.NewReader(seq.Unlimit, path, "")
	if err != nil {
		return nil, &common.ParseError{Path: path, Err: err}
	}
	defer r.Close()

	s := New(256)
	n := 0
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &common.ParseError{Path: path, Msg: "reading record " + strconv.Itoa(n+1), Err: err}
		}
		n++
		q := Sequence{ID: string(rec.ID), Residues: string(rec.Seq.Seq)}
		if err := s.add(q); err != nil {
			return nil, &common.ParseError{Path: path, Err: err}
		}
	}
	if s.Len() == 0 {
		return nil, &common.ParseError{Path: path, Msg: "no FASTA records found"}
	}
	return s, nil
}
