package evaluation

import "github.com/dhasakgbb/physioSim-sub001/internal/domain"

// CompoundMeta flags how far a compound's dose sits along its evidenced
// curve range.
type CompoundMeta struct {
	NearingPlateau bool `json:"nearing_plateau"`
	BeyondEvidence bool `json:"beyond_evidence"`
}

// CompoundResult is the personalized benefit/risk contribution of a single
// stack entry.
type CompoundResult struct {
	Benefit CurveSample  `json:"benefit"`
	Risk    CurveSample  `json:"risk"`
	Dose    float64      `json:"dose"`
	Meta    CompoundMeta `json:"meta"`
}

// StackTotals holds the aggregate metrics of a stack evaluation. Synergy
// deltas are absolute points (the stored fractional records scaled by each
// pair's combined base contribution), so AdjustedBenefit is simply
// TotalBenefit + BenefitSynergyDelta floored at zero.
type StackTotals struct {
	TotalBenefit        float64 `json:"total_benefit"`
	TotalRisk           float64 `json:"total_risk"`
	BenefitSynergyDelta float64 `json:"benefit_synergy_delta"`
	RiskSynergyDelta    float64 `json:"risk_synergy_delta"`
	AdjustedBenefit     float64 `json:"adjusted_benefit"`
	AdjustedRisk        float64 `json:"adjusted_risk"`
	BenefitRiskRatio    float64 `json:"benefit_risk_ratio"`
	NetScore            float64 `json:"net_score"`
}

// PairSynergy records one pair's scaled contribution, kept for display.
type PairSynergy struct {
	PairKey      string                   `json:"pair_key"`
	Rating       domain.InteractionRating `json:"rating"`
	BenefitDelta float64                  `json:"benefit_delta"`
	RiskDelta    float64                  `json:"risk_delta"`
}

// StackWarning surfaces a pair rated dangerous or forbidden.
type StackWarning struct {
	PairKey string                   `json:"pair_key"`
	Rating  domain.InteractionRating `json:"rating"`
	Message string                   `json:"message"`
}

// StackResult is the full output of one stack evaluation. It is plain
// serializable data so report and comparison consumers never call back
// into the engine.
type StackResult struct {
	ByCompound map[string]CompoundResult `json:"by_compound"`
	Pairs      []PairSynergy             `json:"pairs,omitempty"`
	Warnings   []StackWarning            `json:"warnings,omitempty"`
	Totals     StackTotals               `json:"totals"`
}
