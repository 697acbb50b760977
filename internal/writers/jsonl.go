// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"chromosearch/internal/jsonlutil"
	"chromosearch/internal/output"
	"chromosearch/internal/record"
)

func init() { RegisterTable("jsonl", writeJSONL) }

// writeJSONL streams one v1 candidate object per line.
func writeJSONL(w io.Writer, t record.Table, _ bool) error {
	in, done := jsonlutil.Start[*record.Candidate](w, 64, func(enc *json.Encoder, c *record.Candidate) error {
		return enc.Encode(output.ToAPICandidate(c))
	}, IsBrokenPipe)
	for _, c := range t {
		in <- c
	}
	close(in)
	return <-done
}
