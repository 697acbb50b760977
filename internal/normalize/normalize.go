// internal/normalize/normalize.go
package normalize

import (
	"fmt"
	"math"

	"chromosearch/internal/cmdutil"
	"chromosearch/internal/common"
	"chromosearch/internal/hits"
	"chromosearch/internal/record"
	"chromosearch/internal/seqstore"
)

// Options controls normalization.
type Options struct {
	MassMode string               // MassAverage (default) | MassMonoisotopic
	EValues  map[hits.Key]float64 // optional annotation, left-joined
	Log      *cmdutil.Logger
}

// Apply fills Length, NormalizedScore, Mass and EValue for every record and
// re-sorts the table by normalized score descending.
//
// A candidate missing from store is a *common.LookupError: it means an
// earlier stage produced an id this one cannot resolve. A candidate with no
// residues left after stripping stop symbols cannot be normalized and is also
// fatal. A residue without a defined mass only leaves Mass as NaN.
func Apply(t record.Table, store *seqstore.Store, opt Options) error {
	log := opt.Log
	if log == nil {
		log = cmdutil.Discard()
	}
	if opt.MassMode != "" && opt.MassMode != MassAverage && opt.MassMode != MassMonoisotopic {
		return common.Configf("mass", "unknown mass mode %q (want average | monoisotopic)", opt.MassMode)
	}
	for _, c := range t {
		q, ok := store.Get(c.ID())
		if !ok {
			return &common.LookupError{Stage: common.StageNormalize, Side: "candidate", ID: c.ID(), Other: c.Best.ReferenceID}
		}
		clean := common.TrimStops(q.Residues)
		if len(clean) == 0 {
			return fmt.Errorf("%s: candidate %q has no residues after removing stop symbols", common.StageNormalize, c.ID())
		}
		c.Length = len(clean)
		c.NormalizedScore = c.Best.Score / float64(c.Length)

		m, err := Mass(clean, opt.MassMode)
		if err != nil {
			log.Warnf("%s: candidate %q: %v; mass left empty", common.StageNormalize, c.ID(), err)
			m = math.NaN()
		}
		c.Mass = m

		c.EValue = nil
		if ev, ok := opt.EValues[hits.Key{Candidate: c.ID(), Reference: c.Best.ReferenceID}]; ok {
			v := ev
			c.EValue = &v
		}
	}
	t.SortByNormalizedScore()
	return nil
}
