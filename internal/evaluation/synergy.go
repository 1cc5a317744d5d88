package evaluation

import (
	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
)

// Matrix resolves pairwise interaction records by canonical pair key (see
// domain.PairKey). The interactions repository implements it over SQLite;
// tests implement it over a map.
type Matrix interface {
	Lookup(pairKey string) (domain.InteractionRecord, bool)
}

// Catalog resolves compound definitions by id. The catalog repository
// implements it over SQLite; tests implement it over a map.
type Catalog interface {
	Compound(id string) (*domain.Compound, bool)
}

// Interaction returns the interaction record for an unordered pair, or nil
// when the pair has no record or both ids are the same compound.
func (e *Engine) Interaction(a, b string) *domain.InteractionRecord {
	if a == b {
		return nil
	}
	rec, ok := e.matrix.Lookup(domain.PairKey(a, b))
	if !ok {
		return nil
	}
	return &rec
}

// InteractionScore always returns a displayable record. Pairs without a
// stored record fall back to a neutral "compatible" rating with zero
// synergy, so heatmap consumers never deal with absence.
func (e *Engine) InteractionScore(a, b string) domain.InteractionRecord {
	if rec := e.Interaction(a, b); rec != nil {
		return *rec
	}
	return domain.InteractionRecord{
		CompoundA:      a,
		CompoundB:      b,
		BenefitSynergy: 0,
		RiskSynergy:    0,
		Rating:         domain.RatingCompatible,
	}
}

// StackSynergy sums the raw fractional synergy values over every unordered
// pair in the id list. Pairs without a record contribute zero; an empty or
// single-compound list yields zero in both dimensions. The stack evaluator
// does NOT use these sums directly: it scales each pair's fractions by the
// pair's own base contribution before folding them into the totals.
func (e *Engine) StackSynergy(compoundIDs []string) domain.SynergyTotals {
	var totals domain.SynergyTotals
	for i := 0; i < len(compoundIDs); i++ {
		for j := i + 1; j < len(compoundIDs); j++ {
			rec := e.Interaction(compoundIDs[i], compoundIDs[j])
			if rec == nil {
				continue
			}
			totals.BenefitSynergy += rec.BenefitSynergy
			totals.RiskSynergy += rec.RiskSynergy
		}
	}
	return totals
}
