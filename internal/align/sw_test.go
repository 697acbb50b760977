package align

import (
	"errors"
	"math"
	"testing"

	"chromosearch/internal/common"
)

func linear(match, mismatch, open, ext float64) Scheme {
	return Scheme{Substitution: SubstitutionLinear, Match: match, Mismatch: mismatch, GapOpen: open, GapExtend: ext}
}

func mustScorer(t *testing.T, s Scheme) *Scorer {
	t.Helper()
	sc, err := New(s)
	if err != nil {
		t.Fatalf("new scorer: %v", err)
	}
	return sc
}

func TestLinearScores(t *testing.T) {
	cases := []struct {
		name   string
		scheme Scheme
		a, b   string
		want   float64
	}{
		{"prefix", linear(3, -1, -10, -4), "MKT", "MKTA", 9},
		{"overhang", linear(3, -1, -10, -4), "MKTAG", "MKTA", 12},
		{"no overlap", linear(3, -1, -10, -4), "AAA", "CCC", 0},
		{"single gap", linear(3, -3, -2, -1), "WWWWCWWWW", "WWWWWWWW", 22},
		{"affine gap", linear(3, -3, -2, -1), "WWWWCCWWWW", "WWWWWWWW", 21},
		{"gap too costly", linear(3, -1, -10, -4), "AAAGGGAAA", "AAAAAA", 9},
		{"case insensitive", linear(3, -1, -10, -4), "mkt", "MKT", 9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := mustScorer(t, tc.scheme).Score("a", tc.a, "b", tc.b)
			if err != nil {
				t.Fatalf("score: %v", err)
			}
			if got != tc.want {
				t.Fatalf("score(%s,%s)=%g want %g", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestBLOSUM62Identity(t *testing.T) {
	sc := mustScorer(t, DefaultScheme())
	got, err := sc.Score("a", "MKT", "b", "MKT")
	if err != nil {
		t.Fatal(err)
	}
	// M/M=5, K/K=5, T/T=5
	if got != 15 {
		t.Fatalf("want 15, got %g", got)
	}
	got, _ = sc.Score("a", "W", "b", "W")
	if got != 11 {
		t.Fatalf("W/W want 11, got %g", got)
	}
}

func TestMatrixSymmetry(t *testing.T) {
	seqs := []string{
		"MSKGEELFTGVVPILVELDGDVNGHKFSVSGEGEGDATYGKLTLKFICTTGKLPVPWPTLVTTF",
		"MVSKGEEDNMAIIKEFMRFKVHMEGSVNGHEFEIEGEGEGRPYEGTQTAKLKVTKGGPLPFAWDILSPQF",
		"MASSEDVIKEFMRFKVRMEGSVNGHEFEIEGEGEGRPYEG",
		"WWCCHHPP",
	}
	for _, name := range MatrixNames() {
		s := DefaultScheme()
		s.Matrix = name
		sc := mustScorer(t, s)
		for i := range seqs {
			for j := range seqs {
				ab, err1 := sc.Score("a", seqs[i], "b", seqs[j])
				ba, err2 := sc.Score("b", seqs[j], "a", seqs[i])
				if err1 != nil || err2 != nil {
					t.Fatalf("%s: errors %v %v", name, err1, err2)
				}
				if ab != ba {
					t.Fatalf("%s: score(%d,%d)=%g but score(%d,%d)=%g", name, i, j, ab, j, i, ba)
				}
			}
		}
	}
}

func TestDeterministic(t *testing.T) {
	sc := mustScorer(t, DefaultScheme())
	a := "MVSKGEEDNMAIIKEFMRFKVHMEGSVNGHEFEIEGEGEG"
	b := "MSKGEELFTGVVPILVELDGDVNGHKFSVSGEGEGDATYG"
	first, _ := sc.Score("a", a, "b", b)
	for i := 0; i < 20; i++ {
		if got, _ := sc.Score("a", a, "b", b); got != first {
			t.Fatalf("run %d: %g != %g", i, got, first)
		}
	}
}

func TestEmptySequenceIsAlignmentError(t *testing.T) {
	sc := mustScorer(t, DefaultScheme())
	got, err := sc.Score("c", "", "r", "MKT")
	var ae *common.AlignmentError
	if !errors.As(err, &ae) {
		t.Fatalf("want AlignmentError, got %v", err)
	}
	if ae.CandidateID != "c" || ae.ReferenceID != "r" {
		t.Fatalf("ids not reported: %+v", ae)
	}
	if !math.IsNaN(got) {
		t.Fatalf("failed pair must not carry a score, got %g", got)
	}
	if _, err := sc.Align("c", "MKT", "r", ""); err == nil {
		t.Fatal("expected error for empty reference")
	}
}

func TestUnknownResidueFallsBackToX(t *testing.T) {
	sc := mustScorer(t, DefaultScheme())
	if _, err := sc.Score("c", "MK#T", "r", "MKT"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSchemeValidate(t *testing.T) {
	bad := []Scheme{
		{Substitution: "banana"},
		{Substitution: SubstitutionMatrix, Matrix: "NOPE"},
		{Substitution: SubstitutionLinear, Match: 1, Mismatch: 2},
		{Substitution: SubstitutionLinear, Match: 3, Mismatch: -1, GapOpen: 1},
		{Substitution: SubstitutionLinear, Match: 3, Mismatch: -1, GapOpen: -1, GapExtend: 2},
	}
	for i, s := range bad {
		var ce *common.ConfigurationError
		if err := s.Validate(); !errors.As(err, &ce) {
			t.Errorf("case %d: want ConfigurationError, got %v", i, err)
		}
	}
	if err := DefaultScheme().Validate(); err != nil {
		t.Fatalf("default scheme invalid: %v", err)
	}
}
