package writers

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"testing"

	"chromosearch/internal/align"
	"chromosearch/internal/record"
)

func TestUnknownTableFormatError(t *testing.T) {
	var b bytes.Buffer
	err := WriteTable("nope-format", &b, nil, true)
	if err == nil || !strings.Contains(err.Error(), "unknown table format") {
		t.Fatalf("want 'unknown table format' error, got: %v", err)
	}
}

func TestFormatsRegistered(t *testing.T) {
	got := strings.Join(Formats(), ",")
	if got != "csv,json,jsonl,tsv" {
		t.Fatalf("formats=%s", got)
	}
}

func scoredTable() record.Table {
	tbl := record.New([]align.Result{{CandidateID: "c", ReferenceID: "r", Score: 2}})
	tbl[0].Length, tbl[0].NormalizedScore = 2, 1
	return tbl
}

func TestWriteTableDispatch(t *testing.T) {
	tbl := scoredTable()
	for _, f := range Formats() {
		var b bytes.Buffer
		if err := WriteTable(f, &b, tbl, true); err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if !strings.Contains(b.String(), "c") {
			t.Fatalf("%s: output missing row: %q", f, b.String())
		}
	}
}

type pipeWriter struct{}

func (pipeWriter) Write([]byte) (int, error) { return 0, fmt.Errorf("write stdout: %w", syscall.EPIPE) }

func TestWriteTableIgnoresBrokenPipe(t *testing.T) {
	tbl := scoredTable()
	if err := WriteTable("tsv", pipeWriter{}, tbl, true); err != nil {
		t.Fatalf("broken pipe surfaced: %v", err)
	}
	if !IsBrokenPipe(io.ErrClosedPipe) || !IsBrokenPipe(fmt.Errorf("x: %w", os.ErrClosed)) || IsBrokenPipe(nil) || IsBrokenPipe(io.EOF) {
		t.Fatalf("IsBrokenPipe misclassifies")
	}
}
