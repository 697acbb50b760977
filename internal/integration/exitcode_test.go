package integration

import (
	"context"
	"io"
	"strings"
	"testing"

	"chromosearch/internal/app"
)

func TestConfigurationErrorExit2(t *testing.T) {
	cands := write(t, "cand.faa", ">C1\nMKT\n")
	refs := write(t, "ref.faa", ">R1\nMKTA\n")
	code, _, errs := run(t, "-c", cands, "-r", refs, "--gap-open", "5")
	if code != 2 {
		t.Fatalf("want exit 2, got %d (%s)", code, errs)
	}
	if !strings.Contains(errs, "--gap-open") {
		t.Fatalf("stderr should name the option: %s", errs)
	}
}

func TestMissingIDInHitsExit3(t *testing.T) {
	cands := write(t, "cand.faa", ">C1\nMKT\n")
	refs := write(t, "ref.faa", ">R1\nMKTA\n")
	hitsTSV := write(t, "hits.tsv", "C1\tR9\t1e-9\n")
	code, _, errs := run(t, "-c", cands, "-r", refs, "-H", hitsTSV)
	if code != 3 {
		t.Fatalf("want exit 3, got %d (%s)", code, errs)
	}
	if !strings.Contains(errs, `"R9"`) || !strings.Contains(errs, "reference") {
		t.Fatalf("stderr should name the id and side: %s", errs)
	}
}

func TestParseErrorExit3(t *testing.T) {
	cands := write(t, "cand.faa", "")
	refs := write(t, "ref.faa", ">R1\nMKTA\n")
	if code, _, errs := run(t, "-c", cands, "-r", refs); code != 3 {
		t.Fatalf("want exit 3 on empty FASTA, got %d (%s)", code, errs)
	}
}

func TestNoMatchExitCode(t *testing.T) {
	cands := write(t, "cand.faa", ">C1\nMKT\n")
	refs := write(t, "ref.faa", ">R1\nMKTA\n")
	hitsTSV := write(t, "hits.tsv", "C1\tR1\t0.9\n")

	code, out, _ := run(t, "-c", cands, "-r", refs, "-H", hitsTSV)
	if code != 1 {
		t.Fatalf("all hits filtered → want exit 1, got %d", code)
	}
	if lines := strings.Split(strings.TrimRight(out, "\n"), "\n"); len(lines) != 1 || !strings.HasPrefix(lines[0], "candidate_id") {
		t.Fatalf("want header only, got %q", out)
	}
	if code, _, _ := run(t, "-c", cands, "-r", refs, "-H", hitsTSV, "--no-match-exit-code", "0"); code != 0 {
		t.Fatalf("--no-match-exit-code 0 → want 0, got %d", code)
	}
}

func TestAlignErrorPolicies(t *testing.T) {
	// C2 has a header but no residues.
	cands := write(t, "cand.faa", ">C1\nMKT\n>C2\n>C3\nMKTAG\n")
	refs := write(t, "ref.faa", ">R1\nMKTA\n")

	code, out, errs := run(t, "-c", cands, "-r", refs)
	if code != 0 {
		t.Fatalf("skip policy: exit %d (%s)", code, errs)
	}
	if strings.Contains(out, "C2\t") || !strings.Contains(errs, "skipped") {
		t.Fatalf("C2 should be skipped with a warning:\n%s\n%s", out, errs)
	}

	code, _, errs = run(t, "-c", cands, "-r", refs, "--on-align-error", "fail")
	if code != 3 || !strings.Contains(errs, "C2") {
		t.Fatalf("fail policy: exit %d (%s)", code, errs)
	}
}

func TestCanceledContextExit130(t *testing.T) {
	cands := write(t, "cand.faa", ">C1\nMKT\n>C2\nMKTAG\n")
	refs := write(t, "ref.faa", ">R1\nMKTA\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code := app.RunContext(ctx, []string{"-c", cands, "-r", refs}, io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
}

func TestHelpAndVersion(t *testing.T) {
	code, out, _ := run(t)
	if code != 0 || !strings.Contains(out, "Usage:") || !strings.Contains(out, "--references") {
		t.Fatalf("no-arg help: exit %d\n%s", code, out)
	}
	code, out, _ = run(t, "--version")
	if code != 0 || !strings.HasPrefix(out, "chromosearch version ") {
		t.Fatalf("version: exit %d %q", code, out)
	}
}
