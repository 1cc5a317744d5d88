// Package receptor models the finite androgen receptor capacity: how a
// combined active dose saturates it over time (with multi-phase capacity
// upregulation) and how multiple compounds compete for it ranked by
// binding affinity. Like the evaluation package, everything here is a
// pure function of its inputs.
package receptor

import "math"

// DefaultBaseCapacity is the baseline receptor capacity in mg used when a
// caller has no better estimate.
const DefaultBaseCapacity = 100.0

// Adaptation phases. Capacity upregulates quickly under moderate
// overload, slowly under heavy overload, and not at all past the hard
// ceiling.
const (
	PhaseSurge   = 1
	PhaseStrain  = 2
	PhaseCeiling = 3
)

const (
	surgeRatePctPerWeek   = 5.0
	surgeMaxPct           = 50.0
	strainRatePctPerWeek  = 1.5
	strainMaxPct          = 20.0
	ceilingRatePctPerWeek = 0.2
	ceilingMultiple       = 1.7

	// Demand strictly past this percentage of baseline hits the hard
	// ceiling immediately.
	ceilingThresholdPct = 200.0
)

// Spillover routing shares. Toxicity is amplified because unbound hormone
// is disproportionately harmful, not because mass is created; the three
// routed outputs sum back to the spillover after removing that
// amplification.
const (
	spilloverCNSShare       = 0.40
	spilloverToxicityShare  = 0.35
	spilloverRetentionShare = 0.25
	toxicityAmplification   = 1.5
)

// SaturationState describes how an active dose distributes against the
// (possibly upregulated) receptor capacity.
type SaturationState struct {
	ActiveDose  float64 `json:"active_dose"`
	Capacity    float64 `json:"capacity"`
	BoundAmount float64 `json:"bound_amount"`
	Spillover   float64 `json:"spillover"`

	// EfficiencyPct is capacity over demand as a rounded percentage; it
	// collapses once demand exceeds capacity.
	EfficiencyPct int `json:"efficiency_pct"`

	AdaptationPhase   int     `json:"adaptation_phase"`
	AdaptationRatePct float64 `json:"adaptation_rate_pct"`
	IsSaturated       bool    `json:"is_saturated"`
	IsHardCeiling     bool    `json:"is_hard_ceiling"`

	SpilloverToCNS       float64 `json:"spillover_to_cns"`
	SpilloverToToxicity  float64 `json:"spillover_to_toxicity"`
	SpilloverToRetention float64 `json:"spillover_to_retention"`
}

// CalculateSaturation distributes activeDose against baseCapacity after
// weeksElapsed of sustained load.
//
// Adaptation phases:
//   - surge: the first ten weeks of overload; capacity upregulates
//     5%/week, cumulative cap +50%
//   - strain: weeks beyond the surge window; upregulation slows to
//     1.5%/week with a further +20% cap
//   - ceiling: demand strictly past twice baseline pins capacity at 1.7x
//     baseline regardless of further dose or time; this is terminal
//
// Invariant: BoundAmount + Spillover == ActiveDose, BoundAmount <= Capacity.
func CalculateSaturation(activeDose, baseCapacity, weeksElapsed float64) SaturationState {
	capacity := baseCapacity
	ratePct := 0.0
	phase := PhaseSurge

	ratioPct := 0.0
	if baseCapacity > 0 {
		ratioPct = activeDose / baseCapacity * 100
	}

	surgeWeeks := surgeMaxPct / surgeRatePctPerWeek

	if activeDose > baseCapacity {
		switch {
		case ratioPct > ceilingThresholdPct:
			phase = PhaseCeiling
			ratePct = ceilingRatePctPerWeek
			capacity = baseCapacity * ceilingMultiple
		case weeksElapsed <= surgeWeeks:
			phase = PhaseSurge
			if weeksElapsed > 0 {
				ratePct = surgeRatePctPerWeek
				upregulation := math.Min(weeksElapsed*surgeRatePctPerWeek, surgeMaxPct)
				capacity = baseCapacity * (1 + upregulation/100)
			}
		default:
			phase = PhaseStrain
			ratePct = strainRatePctPerWeek
			strainWeeks := weeksElapsed - surgeWeeks
			upregulation := math.Min(strainWeeks*strainRatePctPerWeek, strainMaxPct)
			capacity = baseCapacity * (1 + surgeMaxPct/100 + upregulation/100)
		}
	}

	bound := math.Min(activeDose, capacity)
	spillover := math.Max(0, activeDose-capacity)

	efficiencyPct := 100
	if activeDose > 0 {
		efficiencyPct = int(math.Round(capacity / activeDose * 100))
	}

	state := SaturationState{
		ActiveDose:        activeDose,
		Capacity:          capacity,
		BoundAmount:       bound,
		Spillover:         spillover,
		EfficiencyPct:     efficiencyPct,
		AdaptationPhase:   phase,
		AdaptationRatePct: ratePct,
		IsSaturated:       activeDose > capacity,
		IsHardCeiling:     phase == PhaseCeiling,
	}
	state.SpilloverToCNS, state.SpilloverToToxicity, state.SpilloverToRetention = routeSpillover(spillover)
	return state
}

// routeSpillover decomposes spillover into its three downstream buckets.
// The toxicity share carries the amplification multiplier.
func routeSpillover(spillover float64) (cns, toxicity, retention float64) {
	if spillover <= 0 {
		return 0, 0, 0
	}
	cns = spillover * spilloverCNSShare
	toxicity = spillover * spilloverToxicityShare * toxicityAmplification
	retention = spillover * spilloverRetentionShare
	return cns, toxicity, retention
}
