package evaluation

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
)

func synergyEngine() *Engine {
	matrix := mapMatrix{
		domain.PairKey("alpha", "beta"): {
			CompoundA:      "alpha",
			CompoundB:      "beta",
			BenefitSynergy: 0.12,
			RiskSynergy:    -0.05,
			Rating:         domain.RatingExcellent,
		},
		domain.PairKey("beta", "gamma"): {
			CompoundA:      "beta",
			CompoundB:      "gamma",
			BenefitSynergy: -0.08,
			RiskSynergy:    0.3,
			Rating:         domain.RatingCaution,
		},
	}
	return NewEngine(mapCatalog{}, matrix, 0, zerolog.Nop())
}

func TestInteraction_Symmetric(t *testing.T) {
	engine := synergyEngine()

	ab := engine.Interaction("alpha", "beta")
	ba := engine.Interaction("beta", "alpha")

	require.NotNil(t, ab)
	require.NotNil(t, ba)
	assert.Equal(t, *ab, *ba)
}

func TestInteraction_SelfPairIsNil(t *testing.T) {
	engine := synergyEngine()
	assert.Nil(t, engine.Interaction("alpha", "alpha"))
}

func TestInteraction_MissingPairIsNil(t *testing.T) {
	engine := synergyEngine()
	assert.Nil(t, engine.Interaction("alpha", "gamma"))
}

func TestInteractionScore_NeutralFallback(t *testing.T) {
	engine := synergyEngine()

	score := engine.InteractionScore("alpha", "gamma")
	assert.Equal(t, domain.RatingCompatible, score.Rating)
	assert.Equal(t, 0.0, score.BenefitSynergy)
	assert.Equal(t, 0.0, score.RiskSynergy)
	assert.Equal(t, 0, score.Rating.HeatmapValue())
}

func TestStackSynergy_EmptyAndSingle(t *testing.T) {
	engine := synergyEngine()

	assert.Equal(t, domain.SynergyTotals{}, engine.StackSynergy(nil))
	assert.Equal(t, domain.SynergyTotals{}, engine.StackSynergy([]string{"alpha"}))
}

func TestStackSynergy_SumsAllPairs(t *testing.T) {
	engine := synergyEngine()

	totals := engine.StackSynergy([]string{"alpha", "beta", "gamma"})
	assert.InDelta(t, 0.12-0.08, totals.BenefitSynergy, 1e-9)
	assert.InDelta(t, -0.05+0.3, totals.RiskSynergy, 1e-9)
}

func TestStackSynergy_UnknownPairsContributeZero(t *testing.T) {
	engine := synergyEngine()

	totals := engine.StackSynergy([]string{"alpha", "ghost"})
	assert.Equal(t, domain.SynergyTotals{}, totals)
}
