package receptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateSaturation_UnderCapacity(t *testing.T) {
	state := CalculateSaturation(80, 100, 4)

	assert.Equal(t, 80.0, state.BoundAmount)
	assert.Equal(t, 0.0, state.Spillover)
	assert.Equal(t, 100.0, state.Capacity)
	assert.False(t, state.IsSaturated)
	assert.False(t, state.IsHardCeiling)
	assert.Equal(t, 125, state.EfficiencyPct)
}

func TestCalculateSaturation_ZeroDose(t *testing.T) {
	state := CalculateSaturation(0, 100, 0)

	assert.Equal(t, 0.0, state.BoundAmount)
	assert.Equal(t, 0.0, state.Spillover)
	assert.Equal(t, 100, state.EfficiencyPct)
}

func TestCalculateSaturation_PhaseOneNoTimeElapsed(t *testing.T) {
	// Twice baseline at week zero: overloaded but nothing has adapted yet.
	state := CalculateSaturation(200, 100, 0)

	assert.Equal(t, PhaseSurge, state.AdaptationPhase)
	assert.Equal(t, 100.0, state.Capacity)
	assert.Equal(t, 100.0, state.Spillover)
	assert.Equal(t, 0.0, state.AdaptationRatePct)
	assert.True(t, state.IsSaturated)
	assert.False(t, state.IsHardCeiling)
}

func TestCalculateSaturation_SurgeUpregulation(t *testing.T) {
	// 4 weeks of surge: capacity grows 5%/week.
	state := CalculateSaturation(130, 100, 4)

	assert.Equal(t, PhaseSurge, state.AdaptationPhase)
	assert.InDelta(t, 120.0, state.Capacity, 1e-9)
	assert.Equal(t, 5.0, state.AdaptationRatePct)
	assert.Equal(t, 0.0, state.Spillover)
}

func TestCalculateSaturation_SurgeCapsAtFiftyPercent(t *testing.T) {
	state := CalculateSaturation(180, 100, 10)

	assert.Equal(t, PhaseSurge, state.AdaptationPhase)
	assert.InDelta(t, 150.0, state.Capacity, 1e-9)
	assert.InDelta(t, 30.0, state.Spillover, 1e-9)
}

func TestCalculateSaturation_StrainPhaseSlowsUpregulation(t *testing.T) {
	// 14 weeks: 10 weeks of surge (+50%), 4 of strain (+1.5%/week).
	state := CalculateSaturation(180, 100, 14)

	assert.Equal(t, PhaseStrain, state.AdaptationPhase)
	assert.InDelta(t, 156.0, state.Capacity, 1e-9)
	assert.Equal(t, 1.5, state.AdaptationRatePct)
}

func TestCalculateSaturation_StrainCapsAtTwentyPercent(t *testing.T) {
	// Far beyond the strain horizon: +50% surge +20% strain, no more.
	state := CalculateSaturation(180, 100, 60)

	assert.Equal(t, PhaseStrain, state.AdaptationPhase)
	assert.InDelta(t, 170.0, state.Capacity, 1e-9)
}

func TestCalculateSaturation_HardCeiling(t *testing.T) {
	for _, weeks := range []float64{0, 5, 50} {
		state := CalculateSaturation(250, 100, weeks)

		assert.Equal(t, PhaseCeiling, state.AdaptationPhase)
		assert.True(t, state.IsHardCeiling)
		assert.Equal(t, 170.0, state.Capacity)
		assert.InDelta(t, 80.0, state.Spillover, 1e-9)
	}
}

func TestCalculateSaturation_Conservation(t *testing.T) {
	for _, dose := range []float64{0, 50, 100, 149, 151, 199, 250, 1000} {
		for _, weeks := range []float64{0, 1, 6, 12, 30} {
			state := CalculateSaturation(dose, 100, weeks)

			assert.InDelta(t, dose, state.BoundAmount+state.Spillover, 1e-9)
			assert.LessOrEqual(t, state.BoundAmount, state.Capacity)
		}
	}
}

func TestRouteSpillover_SumsBackToTotal(t *testing.T) {
	state := CalculateSaturation(300, 100, 0)

	assert.InDelta(t, state.Spillover*0.40, state.SpilloverToCNS, 1e-9)
	assert.InDelta(t, state.Spillover*0.35*1.5, state.SpilloverToToxicity, 1e-9)
	assert.InDelta(t, state.Spillover*0.25, state.SpilloverToRetention, 1e-9)

	// Removing the toxicity amplification recovers the full spillover.
	recovered := state.SpilloverToCNS + state.SpilloverToToxicity/1.5 + state.SpilloverToRetention
	assert.InDelta(t, state.Spillover, recovered, 1e-9)
}

func TestRouteSpillover_ZeroWhenUnderCapacity(t *testing.T) {
	state := CalculateSaturation(50, 100, 0)

	assert.Equal(t, 0.0, state.SpilloverToCNS)
	assert.Equal(t, 0.0, state.SpilloverToToxicity)
	assert.Equal(t, 0.0, state.SpilloverToRetention)
}
