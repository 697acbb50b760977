// internal/output/text.go
package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"chromosearch/internal/align"
	"chromosearch/internal/record"
)

// WriteTSV prints one tab-separated line per candidate.
func WriteTSV(w io.Writer, t record.Table, header bool) error {
	bw := bufio.NewWriter(w)
	if header {
		if _, err := fmt.Fprintln(bw, TSVHeader); err != nil {
			return err
		}
	}
	for _, c := range t {
		if _, err := fmt.Fprintln(bw, strings.Join(FormatRow(c), "\t")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteCSV writes the table as RFC 4180 CSV; ids containing commas or quotes
// are quoted.
func WriteCSV(w io.Writer, t record.Table, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(Columns); err != nil {
			return err
		}
	}
	for _, c := range t {
		if err := cw.Write(FormatRow(c)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAlignmentsTSV dumps raw pair scores in the order they were produced.
func WriteAlignmentsTSV(w io.Writer, results []align.Result) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, AlignmentsHeader); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\n", r.CandidateID, r.ReferenceID, FormatFloat(r.Score)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
