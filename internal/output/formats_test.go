package output

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"chromosearch/internal/align"
	"chromosearch/internal/record"
	"chromosearch/internal/stats"
	"chromosearch/pkg/api"
)

func sampleTable() record.Table {
	t := record.New([]align.Result{
		{CandidateID: "C1", ReferenceID: "R1", Score: 9},
		{CandidateID: "C,2", ReferenceID: "R1", Score: 12},
	})
	e := 1e-5
	t[0].Length, t[0].NormalizedScore, t[0].Mass, t[0].EValue = 3, 3, 378.4875, &e
	t[0].PValue, t[0].CorrectedPValue, t[0].Significant = 0.01, 0.02, true
	t[1].Length, t[1].NormalizedScore = 5, 2.4
	return t
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTSV(&buf, sampleTable(), true); err != nil {
		t.Fatalf("tsv: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 || lines[0] != TSVHeader {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	want := "C1\tR1\t9\t3\t3\t378.4875\t1e-05\t\t0.02\t0.01\ttrue"
	if lines[1] != want {
		t.Fatalf("row:\n got:  %q\n want: %q", lines[1], want)
	}
	// NaN cells and missing e-value are empty.
	if lines[2] != "C,2\tR1\t12\t5\t2.4\t\t\t\t\t\tfalse" {
		t.Fatalf("row 2: %q", lines[2])
	}
}

func TestWriteTSVNoHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTSV(&buf, sampleTable(), false); err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(buf.String(), "candidate_id") {
		t.Fatalf("header written")
	}
}

func TestWriteCSVQuotes(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleTable(), true); err != nil {
		t.Fatalf("csv: %v", err)
	}
	if !strings.HasPrefix(buf.String(), strings.Join(Columns, ",")+"\n") {
		t.Fatalf("csv header: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "\"C,2\",R1,12") {
		t.Fatalf("id with comma not quoted:\n%s", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleTable()); err != nil {
		t.Fatalf("json write: %v", err)
	}
	var got []api.CandidateV1
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil || len(got) != 2 {
		t.Fatalf("json decode: %v %v", err, got)
	}
	if got[0].CandidateID != "C1" || got[0].EValue == nil || *got[0].EValue != 1e-5 || !got[0].Significant {
		t.Fatalf("row 0: %+v", got[0])
	}
	if got[1].Mass != nil || got[1].RobustZ != nil || got[1].EValue != nil {
		t.Fatalf("NaN values should be null: %+v", got[1])
	}
}

func TestWriteAlignmentsTSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteAlignmentsTSV(&buf, []align.Result{{CandidateID: "a", ReferenceID: "b", Score: 1.5}})
	if err != nil {
		t.Fatal(err)
	}
	if buf.String() != AlignmentsHeader+"\na\tb\t1.5\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestFitReport(t *testing.T) {
	tbl := sampleTable()
	est := stats.Estimate{
		Median: 2.7, MAD: math.NaN(), Method: stats.FDRBH, Alpha: 0.05,
		PValues:  []float64{math.NaN(), math.NaN()},
		Warnings: []error{errString("degenerate")},
	}
	r := FitReport("run-1", tbl, est)
	if r.Reliable || r.Mu != nil || r.MAD != nil || *r.Median != 2.7 {
		t.Fatalf("report: %+v", r)
	}
	if len(r.CandidateIDs) != 2 || r.CandidateIDs[1] != "C,2" || r.PValues[0] != nil {
		t.Fatalf("columns: %+v", r)
	}
	var buf bytes.Buffer
	if err := WriteFitReport(&buf, r); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(buf.String(), "\"warnings\": [\n    \"degenerate\"") {
		t.Fatalf("warnings missing:\n%s", buf.String())
	}
}

type errString string

func (e errString) Error() string { return string(e) }
