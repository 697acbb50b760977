// internal/align/scheme.go
package align

import (
	"sort"
	"strings"

	"github.com/biogo/biogo/align/matrix"

	"chromosearch/internal/common"
)

// Substitution kinds.
const (
	SubstitutionMatrix = "matrix"
	SubstitutionLinear = "linear"
)

// DefaultMatrix is used when the matrix scheme is chosen without a name.
const DefaultMatrix = "BLOSUM62"

// Scheme is the scoring configuration shared by every pair of a run.
type Scheme struct {
	Substitution string // SubstitutionMatrix | SubstitutionLinear
	Matrix       string // matrix name, SubstitutionMatrix only

	Match    float64 // SubstitutionLinear only
	Mismatch float64 // SubstitutionLinear only

	GapOpen   float64 // first residue of a gap (<= 0)
	GapExtend float64 // each further residue of the same gap (<= 0)
}

// DefaultScheme mirrors the historical pipeline defaults: BLOSUM62 with
// match/mismatch 3/-1 kept for the linear fallback, and gaps -10/-4.
func DefaultScheme() Scheme {
	return Scheme{
		Substitution: SubstitutionMatrix,
		Matrix:       DefaultMatrix,
		Match:        3,
		Mismatch:     -1,
		GapOpen:      -10,
		GapExtend:    -4,
	}
}

var matrices = map[string][][]int{
	"BLOSUM45": matrix.BLOSUM45,
	"BLOSUM50": matrix.BLOSUM50,
	"BLOSUM62": matrix.BLOSUM62,
	"BLOSUM80": matrix.BLOSUM80,
	"BLOSUM90": matrix.BLOSUM90,
	"PAM250":   matrix.PAM250,
}

// MatrixNames lists the substitution matrices that can be selected.
func MatrixNames() []string {
	out := make([]string, 0, len(matrices))
	for k := range matrices {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Validate checks the scheme and returns a *common.ConfigurationError on the
// first problem.
func (s Scheme) Validate() error {
	switch s.Substitution {
	case SubstitutionMatrix:
		if _, ok := matrices[strings.ToUpper(s.Matrix)]; !ok {
			return common.Configf("matrix", "unknown substitution matrix %q (want one of %s)",
				s.Matrix, strings.Join(MatrixNames(), ", "))
		}
	case SubstitutionLinear:
		if s.Match <= s.Mismatch {
			return common.Configf("match", "match score (%g) must exceed mismatch score (%g)", s.Match, s.Mismatch)
		}
		if s.Match <= 0 {
			return common.Configf("match", "match score must be positive, got %g", s.Match)
		}
	default:
		return common.Configf("substitution", "unknown substitution scheme %q (want matrix | linear)", s.Substitution)
	}
	if s.GapOpen > 0 {
		return common.Configf("gap-open", "gap open penalty must be <= 0, got %g", s.GapOpen)
	}
	if s.GapExtend > 0 {
		return common.Configf("gap-extend", "gap extend penalty must be <= 0, got %g", s.GapExtend)
	}
	return nil
}
