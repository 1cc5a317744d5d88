package domain

import "strings"

// InteractionRating is the qualitative compatibility rating of a compound
// pair.
type InteractionRating string

const (
	RatingExcellent  InteractionRating = "excellent"
	RatingGood       InteractionRating = "good"
	RatingCompatible InteractionRating = "compatible"
	RatingCaution    InteractionRating = "caution"
	RatingDangerous  InteractionRating = "dangerous"
	RatingForbidden  InteractionRating = "forbidden"
)

// Valid reports whether the rating is a known value.
func (r InteractionRating) Valid() bool {
	switch r {
	case RatingExcellent, RatingGood, RatingCompatible, RatingCaution, RatingDangerous, RatingForbidden:
		return true
	}
	return false
}

// HeatmapValue maps the rating onto the display scale used by heatmap
// consumers (2 = excellent synergy down to -3 = not recommended).
func (r InteractionRating) HeatmapValue() int {
	switch r {
	case RatingExcellent:
		return 2
	case RatingGood:
		return 1
	case RatingCompatible:
		return 0
	case RatingCaution:
		return -1
	case RatingDangerous:
		return -2
	case RatingForbidden:
		return -3
	}
	return 0
}

// InteractionRecord holds the pairwise synergy data for an unordered
// compound pair. Synergy values are fractions in [-1, 1], interpreted as
// fractional adjustments relative to the pair's combined base
// contribution.
type InteractionRecord struct {
	CompoundA      string            `json:"compound_a"`
	CompoundB      string            `json:"compound_b"`
	BenefitSynergy float64           `json:"benefit_synergy"`
	RiskSynergy    float64           `json:"risk_synergy"`
	Rating         InteractionRating `json:"rating"`
	Description    string            `json:"description,omitempty"`
}

// PairKey builds the canonical unordered key for a compound pair: the two
// ids in lexical order joined by an underscore. PairKey(a, b) == PairKey(b, a).
func PairKey(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + "_" + b
}

// SynergyTotals is the summed pairwise synergy of a stack, still expressed
// as fractions. The stack evaluator scales them against base
// contributions.
type SynergyTotals struct {
	BenefitSynergy float64 `json:"benefit_synergy"`
	RiskSynergy    float64 `json:"risk_synergy"`
}
