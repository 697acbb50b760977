package pairs

import (
	"errors"
	"testing"

	"chromosearch/internal/common"
	"chromosearch/internal/seqstore"
)

func stores(t *testing.T) (*seqstore.Store, *seqstore.Store) {
	t.Helper()
	c, err := seqstore.FromSequences(
		seqstore.Sequence{ID: "C1", Residues: "MKT"},
		seqstore.Sequence{ID: "C2", Residues: "MKTAG"},
	)
	if err != nil {
		t.Fatal(err)
	}
	r, err := seqstore.FromSequences(
		seqstore.Sequence{ID: "R1", Residues: "MKTA"},
		seqstore.Sequence{ID: "R2", Residues: "GGG"},
		seqstore.Sequence{ID: "R3", Residues: "W"},
	)
	if err != nil {
		t.Fatal(err)
	}
	return c, r
}

func TestCrossProductOrder(t *testing.T) {
	c, r := stores(t)
	if n := Estimate(c, r, nil); n != 6 {
		t.Fatalf("estimate=%d want 6", n)
	}
	got, err := Generate(c, r, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := [][2]string{{"C1", "R1"}, {"C1", "R2"}, {"C1", "R3"}, {"C2", "R1"}, {"C2", "R2"}, {"C2", "R3"}}
	if len(got) != len(want) {
		t.Fatalf("len=%d", len(got))
	}
	for i, w := range want {
		if got[i].Candidate.ID != w[0] || got[i].Reference.ID != w[1] {
			t.Fatalf("pair %d = %s/%s want %s/%s", i, got[i].Candidate.ID, got[i].Reference.ID, w[0], w[1])
		}
	}
}

func TestRestrictedFollowsLinkOrder(t *testing.T) {
	c, r := stores(t)
	links := []Link{{"C2", "R3"}, {"C1", "R1"}, {"C2", "R3"}}
	if n := Estimate(c, r, links); n != 3 {
		t.Fatalf("estimate=%d", n)
	}
	got, err := Generate(c, r, links)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0].Candidate.ID != "C2" || got[1].Reference.Residues != "MKTA" {
		t.Fatalf("got %+v", got)
	}
}

func TestRestrictedMissingIDAborts(t *testing.T) {
	c, r := stores(t)
	for _, tc := range []struct {
		link Link
		side string
		id   string
	}{
		{Link{"C9", "R1"}, "candidate", "C9"},
		{Link{"C1", "R9"}, "reference", "R9"},
	} {
		_, err := Generate(c, r, []Link{{"C1", "R1"}, tc.link})
		var le *common.LookupError
		if !errors.As(err, &le) {
			t.Fatalf("want LookupError, got %v", err)
		}
		if le.Side != tc.side || le.ID != tc.id || le.Stage != common.StagePairs {
			t.Fatalf("bad error detail: %+v", le)
		}
	}
}

func TestEmptyRestrictionIsNotCrossProduct(t *testing.T) {
	c, r := stores(t)
	got, err := Generate(c, r, []Link{})
	if err != nil || len(got) != 0 {
		t.Fatalf("got %d pairs, err %v", len(got), err)
	}
}
