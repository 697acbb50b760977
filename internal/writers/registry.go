// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"chromosearch/internal/output"
	"chromosearch/internal/record"
)

// TableWriter serializes a finished score table.
type TableWriter func(w io.Writer, t record.Table, header bool) error

// Writer registry (format → handler). Register in init().
var TableWriters = map[string]TableWriter{}

// RegisterTable adds or replaces a format (idempotent last-wins).
func RegisterTable(format string, fn TableWriter) { TableWriters[format] = fn }

func init() {
	RegisterTable("tsv", output.WriteTSV)
	RegisterTable("csv", output.WriteCSV)
	RegisterTable("json", func(w io.Writer, t record.Table, _ bool) error { return output.WriteJSON(w, t) })
}

// Formats lists registered formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(TableWriters))
	for f := range TableWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// WriteTable dispatches to the registered writer. A reader that went away
// early (e.g. `| head`) is not an error.
func WriteTable(format string, w io.Writer, t record.Table, header bool) error {
	fn, ok := TableWriters[format]
	if !ok {
		return fmt.Errorf("unknown table format %q (no writer registered)", format)
	}
	if err := fn(w, t, header); err != nil && !IsBrokenPipe(err) {
		return err
	}
	return nil
}
