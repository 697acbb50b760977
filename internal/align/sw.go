// internal/align/sw.go
package align

import (
	"fmt"
	"math"
	"strings"

	"github.com/biogo/biogo/alphabet"

	"chromosearch/internal/common"
)

// Result is the score of one candidate/reference pair.
type Result struct {
	CandidateID string
	ReferenceID string
	Score       float64
}

// Scorer computes optimal local alignment scores (Smith–Waterman with Gotoh
// affine gaps). A Scorer is immutable after New and safe for concurrent use.
type Scorer struct {
	scheme Scheme

	// matrix mode
	sub   [][]int
	index [256]int // residue byte -> matrix index, -1 when unscorable
	xIdx  int      // fallback for residues missing from the matrix, -1 if none
}

// New validates scheme and prepares the lookup tables.
func New(scheme Scheme) (*Scorer, error) {
	if err := scheme.Validate(); err != nil {
		return nil, err
	}
	s := &Scorer{scheme: scheme, xIdx: -1}
	if scheme.Substitution == SubstitutionMatrix {
		s.sub = matrices[strings.ToUpper(scheme.Matrix)]
		for i := range s.index {
			s.index[i] = -1
		}
		// Printable letters only; the gap letter is never a residue.
		for c := '!'; c <= '~'; c++ {
			if c == '-' {
				continue
			}
			idx := alphabet.Protein.IndexOf(alphabet.Letter(c))
			if idx < 0 || idx >= len(s.sub) || len(s.sub[idx]) != len(s.sub) {
				continue
			}
			s.index[c] = idx
		}
		s.xIdx = s.index['X']
	}
	return s, nil
}

// Scheme returns the scoring scheme in use.
func (s *Scorer) Scheme() Scheme { return s.scheme }

// Score aligns candidate against reference. The error is always an
// *common.AlignmentError; on error the returned score is NaN, never a value
// left over from another pair.
func (s *Scorer) Score(candID, candidate, refID, reference string) (float64, error) {
	fail := func(reason string) (float64, error) {
		return math.NaN(), &common.AlignmentError{CandidateID: candID, ReferenceID: refID, Reason: reason}
	}
	if len(candidate) == 0 {
		return fail("empty candidate sequence")
	}
	if len(reference) == 0 {
		return fail("empty reference sequence")
	}
	if s.sub == nil {
		return s.localLinear(candidate, reference), nil
	}
	a, err := s.encode(candidate)
	if err != nil {
		return fail("candidate: " + err.Error())
	}
	b, err := s.encode(reference)
	if err != nil {
		return fail("reference: " + err.Error())
	}
	return s.localMatrix(a, b), nil
}

// Align scores one pair and packages it as a Result.
func (s *Scorer) Align(candID, candidate, refID, reference string) (Result, error) {
	score, err := s.Score(candID, candidate, refID, reference)
	if err != nil {
		return Result{}, err
	}
	return Result{CandidateID: candID, ReferenceID: refID, Score: score}, nil
}

func (s *Scorer) encode(residues string) ([]int, error) {
	out := make([]int, len(residues))
	for i := 0; i < len(residues); i++ {
		c := residues[i]
		idx := s.index[c]
		if idx < 0 {
			idx = s.index[toUpper(c)]
		}
		if idx < 0 {
			idx = s.xIdx
		}
		if idx < 0 {
			return nil, fmt.Errorf("residue %q at position %d is not in the substitution matrix", c, i+1)
		}
		out[i] = idx
	}
	return out, nil
}

func toUpper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// The two kernels below share one recurrence over rows of the reference:
//
//	E[i][j] = max(H[i][j-1] + open, E[i][j-1] + extend)   gap in candidate
//	F[i][j] = max(H[i-1][j] + open, F[i-1][j] + extend)   gap in reference
//	H[i][j] = max(0, H[i-1][j-1] + sub(a_i, b_j), E[i][j], F[i][j])
//
// and keep only the previous row. The answer is max H; the first maximum
// found in row-major order wins, which only matters for the (unretained) path.

func (s *Scorer) localMatrix(a, b []int) float64 {
	open, ext := s.scheme.GapOpen, s.scheme.GapExtend
	m := len(b)
	h := make([]float64, m+1)
	f := make([]float64, m+1)
	for j := range f {
		f[j] = math.Inf(-1)
	}
	best := 0.0
	for i := 1; i <= len(a); i++ {
		row := s.sub[a[i-1]]
		diag := 0.0 // H[i-1][0]
		e := math.Inf(-1)
		h[0] = 0
		for j := 1; j <= m; j++ {
			up := h[j]
			e = math.Max(h[j-1]+open, e+ext)
			f[j] = math.Max(up+open, f[j]+ext)
			v := diag + float64(row[b[j-1]])
			if e > v {
				v = e
			}
			if f[j] > v {
				v = f[j]
			}
			if v < 0 {
				v = 0
			}
			diag = up
			h[j] = v
			if v > best {
				best = v
			}
		}
	}
	return best
}

func (s *Scorer) localLinear(a, b string) float64 {
	open, ext := s.scheme.GapOpen, s.scheme.GapExtend
	match, mismatch := s.scheme.Match, s.scheme.Mismatch
	m := len(b)
	h := make([]float64, m+1)
	f := make([]float64, m+1)
	for j := range f {
		f[j] = math.Inf(-1)
	}
	best := 0.0
	for i := 1; i <= len(a); i++ {
		ca := toUpper(a[i-1])
		diag := 0.0
		e := math.Inf(-1)
		h[0] = 0
		for j := 1; j <= m; j++ {
			up := h[j]
			e = math.Max(h[j-1]+open, e+ext)
			f[j] = math.Max(up+open, f[j]+ext)
			v := diag + mismatch
			if ca == toUpper(b[j-1]) {
				v = diag + match
			}
			if e > v {
				v = e
			}
			if f[j] > v {
				v = f[j]
			}
			if v < 0 {
				v = 0
			}
			diag = up
			h[j] = v
			if v > best {
				best = v
			}
		}
	}
	return best
}
