// internal/hits/table.go
package hits

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shenwei356/xopen"

	"chromosearch/internal/common"
	"chromosearch/internal/pairs"
)

// Hit is one row of the coarse similarity search table.
type Hit struct {
	CandidateID string
	ReferenceID string
	EValue      float64 // NaN when the table has no e-value column
}

// HasEValue reports whether the row carried an e-value.
func (h Hit) HasEValue() bool { return !math.IsNaN(h.EValue) }

// Column aliases accepted in headed tables. BLAST names come first, then the
// pipeline's own output names, then the legacy spreadsheet names.
var (
	candidateCols = []string{"qseqid", "candidate_id", "name1", "query"}
	referenceCols = []string{"sseqid", "reference_id", "name2", "subject"}
	evalueCols    = []string{"evalue", "e_value", "e-value"}
)

// BLAST -outfmt 6 default columns: qseqid sseqid pident length mismatch
// gapopen qstart qend sstart send evalue bitscore.
const blastEValueCol = 10

// Load reads a coarse-search table, plain or gzipped, '-' for STDIN. Files
// ending in .csv (or .csv.gz) are comma separated,
// anything else tab separated. A header row is recognised by its column names;
// without one, BLAST tabular layout is assumed (3-column files are read as
// candidate, reference, e-value). Lines starting with '#' are skipped.
func Load(path string) ([]Hit, error) {
	fh, err := xopen.Ropen(path)
	if err != nil {
		return nil, &common.ParseError{Path: path, Msg: "opening hit table", Err: err}
	}
	defer fh.Close()
	comma := '\t'
	if strings.EqualFold(filepath.Ext(strings.TrimSuffix(path, ".gz")), ".csv") {
		comma = ','
	}
	return Read(fh, path, comma)
}

// Read parses a table from r; name is used in error messages.
func Read(r io.Reader, name string, comma rune) ([]Hit, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	ci, ri, ei := 0, 1, -1
	first := true
	var out []Hit
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &common.ParseError{Path: name, Err: err}
		}
		line, _ := cr.FieldPos(0)
		if first {
			first = false
			if c, r, e, ok := headerColumns(rec); ok {
				ci, ri, ei = c, r, e
				continue
			}
			switch {
			case len(rec) > blastEValueCol:
				ei = blastEValueCol
			case len(rec) == 3:
				ei = 2
			}
		}
		if len(rec) <= ci || len(rec) <= ri {
			return nil, &common.ParseError{Path: name, Line: line, Msg: fmt.Sprintf("want at least %d fields, got %d", max(ci, ri)+1, len(rec))}
		}
		h := Hit{
			CandidateID: strings.TrimSpace(rec[ci]),
			ReferenceID: strings.TrimSpace(rec[ri]),
			EValue:      math.NaN(),
		}
		if h.CandidateID == "" || h.ReferenceID == "" {
			return nil, &common.ParseError{Path: name, Line: line, Msg: "empty candidate or reference id"}
		}
		if ei >= 0 && ei < len(rec) && strings.TrimSpace(rec[ei]) != "" {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[ei]), 64)
			if err != nil {
				return nil, &common.ParseError{Path: name, Line: line, Msg: "bad e-value", Err: err}
			}
			h.EValue = v
		}
		out = append(out, h)
	}
	return out, nil
}

func headerColumns(rec []string) (cand, ref, ev int, ok bool) {
	cand, ref, ev = -1, -1, -1
	for i, f := range rec {
		f = strings.ToLower(strings.TrimSpace(f))
		switch {
		case cand < 0 && contains(candidateCols, f):
			cand = i
		case ref < 0 && contains(referenceCols, f):
			ref = i
		case ev < 0 && contains(evalueCols, f):
			ev = i
		}
	}
	return cand, ref, ev, cand >= 0 && ref >= 0
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// FilterEValue drops rows whose e-value is not strictly below maxE. Rows
// without an e-value are kept. maxE <= 0 disables filtering.
func FilterEValue(in []Hit, maxE float64) []Hit {
	if maxE <= 0 {
		return in
	}
	out := in[:0:0]
	for _, h := range in {
		if h.HasEValue() && h.EValue >= maxE {
			continue
		}
		out = append(out, h)
	}
	return out
}

// Links converts rows to pair-generator links, preserving order.
func Links(in []Hit) []pairs.Link {
	out := make([]pairs.Link, len(in))
	for i, h := range in {
		out[i] = pairs.Link{CandidateID: h.CandidateID, ReferenceID: h.ReferenceID}
	}
	return out
}

// Key identifies a candidate/reference combination.
type Key struct{ Candidate, Reference string }

// EValues indexes e-values by (candidate, reference). When a combination
// appears more than once the smallest e-value wins.
func EValues(in []Hit) map[Key]float64 {
	out := make(map[Key]float64, len(in))
	for _, h := range in {
		if !h.HasEValue() {
			continue
		}
		k := Key{h.CandidateID, h.ReferenceID}
		if cur, ok := out[k]; !ok || h.EValue < cur {
			out[k] = h.EValue
		}
	}
	return out
}
