package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
)

func neutralCompound() *domain.Compound {
	return &domain.Compound{
		ID:                 "test_compound",
		Name:               "Test Compound",
		AdministrationType: domain.AdministrationInjectable,
	}
}

func TestPersonalize_DefaultProfileIsIdentity(t *testing.T) {
	base := CurveSample{Value: 3.0, ConfidenceWidth: 0.2}
	profile := domain.DefaultProfile()

	benefit := Personalize(neutralCompound(), domain.CurveBenefit, 500, base, profile)
	risk := Personalize(neutralCompound(), domain.CurveRisk, 500, base, profile)

	assert.Equal(t, 3.0, benefit.Value)
	assert.Equal(t, 0.2, benefit.ConfidenceWidth)
	assert.Equal(t, 3.0, risk.Value)
	assert.Equal(t, 0.2, risk.ConfidenceWidth)
}

func TestPersonalize_AgeShiftsBenefitDownRiskUp(t *testing.T) {
	base := CurveSample{Value: 2.0, ConfidenceWidth: 0.2}

	older := domain.DefaultProfile()
	older.Age = 52.5 // ageDelta = +0.5

	benefit := Personalize(neutralCompound(), domain.CurveBenefit, 500, base, older)
	risk := Personalize(neutralCompound(), domain.CurveRisk, 500, base, older)

	assert.InDelta(t, 2.0*(1-0.5*0.25), benefit.Value, 1e-9)
	assert.InDelta(t, 2.0*(1+0.5*0.40), risk.Value, 1e-9)
	// Risk confidence widens with positive age offset.
	assert.InDelta(t, 0.2*(1+0.5*0.20), risk.ConfidenceWidth, 1e-9)
}

func TestPersonalize_YoungerAgeReducesRisk(t *testing.T) {
	base := CurveSample{Value: 2.0, ConfidenceWidth: 0.2}

	younger := domain.DefaultProfile()
	younger.Age = 21 // ageDelta = -0.4

	risk := Personalize(neutralCompound(), domain.CurveRisk, 500, base, younger)
	assert.InDelta(t, 2.0*(1-0.4*0.15), risk.Value, 1e-9)
}

func TestPersonalize_TrainingLoadBoostsBenefitTightensConfidence(t *testing.T) {
	base := CurveSample{Value: 2.0, ConfidenceWidth: 0.5}

	heavy := domain.DefaultProfile()
	heavy.BodyweightKg = 125 // weight component 1.0
	heavy.YearsTraining = 12 // years component 1.0

	benefit := Personalize(neutralCompound(), domain.CurveBenefit, 500, base, heavy)
	risk := Personalize(neutralCompound(), domain.CurveRisk, 500, base, heavy)

	assert.InDelta(t, 2.0+0.15+1.0*0.35, benefit.Value, 1e-9)
	assert.InDelta(t, 0.5*(1-1.0*0.20), benefit.ConfidenceWidth, 1e-9)
	assert.InDelta(t, 2.0*(1-1.0*0.10), risk.Value, 1e-9)
}

func TestPersonalize_SHBGOnlyAffectsSensitiveCompounds(t *testing.T) {
	base := CurveSample{Value: 2.0, ConfidenceWidth: 0.2}
	shbg := 70.0 // shbgDelta = +1.0

	profile := domain.DefaultProfile()
	profile.SHBG = &shbg

	insensitive := Personalize(neutralCompound(), domain.CurveBenefit, 500, base, profile)
	assert.Equal(t, 2.0, insensitive.Value)

	sensitive := neutralCompound()
	sensitive.SHBGSensitive = true
	benefit := Personalize(sensitive, domain.CurveBenefit, 500, base, profile)
	risk := Personalize(sensitive, domain.CurveRisk, 500, base, profile)

	assert.InDelta(t, 2.0*(1-1.0*0.40), benefit.Value, 1e-9)
	assert.InDelta(t, 2.0*(1+1.0*0.15), risk.Value, 1e-9)
}

func TestPersonalize_MissingSHBGContributesNothing(t *testing.T) {
	base := CurveSample{Value: 2.0, ConfidenceWidth: 0.2}
	profile := domain.DefaultProfile()
	profile.SHBG = nil

	sensitive := neutralCompound()
	sensitive.SHBGSensitive = true

	benefit := Personalize(sensitive, domain.CurveBenefit, 500, base, profile)
	assert.Equal(t, 2.0, benefit.Value)
}

func TestPersonalize_AromatizationWidensRisk(t *testing.T) {
	base := CurveSample{Value: 2.0, ConfidenceWidth: 0.2}

	profile := domain.DefaultProfile()
	profile.Aromatase = domain.TendencyHigh

	aromatizing := neutralCompound()
	aromatizing.Aromatizing = true

	risk := Personalize(aromatizing, domain.CurveRisk, 500, base, profile)
	benefit := Personalize(aromatizing, domain.CurveBenefit, 500, base, profile)

	assert.InDelta(t, 2.0*(1+0.35*0.80), risk.Value, 1e-9)
	assert.InDelta(t, 0.2*(1+0.35*0.40), risk.ConfidenceWidth, 1e-9)
	// High tendency slightly dampens perceived benefit.
	assert.InDelta(t, 2.0*(1-0.35*0.15), benefit.Value, 1e-9)

	// Non-aromatizing compounds are untouched.
	plain := Personalize(neutralCompound(), domain.CurveRisk, 500, base, profile)
	assert.Equal(t, 2.0, plain.Value)
}

func TestPersonalize_AnxietyEarlyDoseScalar(t *testing.T) {
	base := CurveSample{Value: 2.0, ConfidenceWidth: 0.2}

	profile := domain.DefaultProfile()
	profile.Anxiety = domain.TendencyHigh

	neuro := neutralCompound()
	neuro.NeuroSensitive = true

	early := Personalize(neuro, domain.CurveRisk, 200, base, profile)
	late := Personalize(neuro, domain.CurveRisk, 600, base, profile)

	assert.InDelta(t, 2.0*(1+0.35*1.25), early.Value, 1e-9)
	assert.InDelta(t, 2.0*(1+0.35*1.10), late.Value, 1e-9)
	assert.Greater(t, early.Value, late.Value)
}

func TestPersonalize_ExperienceLevels(t *testing.T) {
	base := CurveSample{Value: 2.0, ConfidenceWidth: 0.2}

	cases := []struct {
		level       domain.ExperienceLevel
		wantBenefit float64
		wantRisk    float64
	}{
		{domain.ExperienceNone, 2.0 * 1.18, 2.0 * 1.35},
		{domain.ExperienceSingleCompound, 2.0 * 1.08, 2.0 * 1.15},
		{domain.ExperienceMultiCompound, 2.0, 2.0},
		{domain.ExperienceVeteran, 2.0 * 0.88, 2.0},
	}

	for _, tc := range cases {
		profile := domain.DefaultProfile()
		profile.Experience = tc.level

		benefit := Personalize(neutralCompound(), domain.CurveBenefit, 500, base, profile)
		risk := Personalize(neutralCompound(), domain.CurveRisk, 500, base, profile)

		assert.InDelta(t, tc.wantBenefit, benefit.Value, 1e-9, string(tc.level))
		assert.InDelta(t, tc.wantRisk, risk.Value, 1e-9, string(tc.level))
	}
}

func TestPersonalize_LabModeScalesFactor(t *testing.T) {
	base := CurveSample{Value: 2.0, ConfidenceWidth: 0.2}

	profile := domain.DefaultProfile()
	profile.Age = 70 // ageDelta = +1.0
	profile.LabMode = domain.LabMode{
		Enabled: true,
		Scales:  map[domain.ScaleFactor]float64{domain.ScaleAge: 0.5},
	}

	benefit := Personalize(neutralCompound(), domain.CurveBenefit, 500, base, profile)
	assert.InDelta(t, 2.0*(1-1.0*0.25*0.5), benefit.Value, 1e-9)

	// Disabled lab mode ignores overrides entirely.
	profile.LabMode.Enabled = false
	benefit = Personalize(neutralCompound(), domain.CurveBenefit, 500, base, profile)
	assert.InDelta(t, 2.0*(1-1.0*0.25), benefit.Value, 1e-9)
}

func TestPersonalize_UncertaintyScaleAppliesToConfidenceOnly(t *testing.T) {
	base := CurveSample{Value: 2.0, ConfidenceWidth: 0.4}

	profile := domain.DefaultProfile()
	profile.LabMode = domain.LabMode{
		Enabled: true,
		Scales:  map[domain.ScaleFactor]float64{domain.ScaleUncertainty: 1.5},
	}

	result := Personalize(neutralCompound(), domain.CurveBenefit, 500, base, profile)
	assert.Equal(t, 2.0, result.Value)
	assert.InDelta(t, 0.6, result.ConfidenceWidth, 1e-9)
}

func TestPersonalize_ConfidenceFloorAndClamps(t *testing.T) {
	profile := domain.DefaultProfile()

	// Non-zero width floors at 0.1 before multipliers.
	tiny := Personalize(neutralCompound(), domain.CurveBenefit, 500, CurveSample{Value: 1.0, ConfidenceWidth: 0.02}, profile)
	assert.InDelta(t, 0.1, tiny.ConfidenceWidth, 1e-9)

	// Zero width stays zero.
	zero := Personalize(neutralCompound(), domain.CurveBenefit, 500, CurveSample{Value: 1.0, ConfidenceWidth: 0}, profile)
	assert.Equal(t, 0.0, zero.ConfidenceWidth)

	// Value clamps to the output ceiling.
	novice := domain.DefaultProfile()
	novice.Experience = domain.ExperienceNone
	novice.BodyweightKg = 125
	novice.YearsTraining = 12
	big := Personalize(neutralCompound(), domain.CurveBenefit, 500, CurveSample{Value: 5.4, ConfidenceWidth: 0.2}, novice)
	assert.Equal(t, 5.5, big.Value)

	// Confidence clamps to its ceiling.
	anxious := domain.DefaultProfile()
	anxious.LabMode = domain.LabMode{
		Enabled: true,
		Scales:  map[domain.ScaleFactor]float64{domain.ScaleUncertainty: 10},
	}
	wide := Personalize(neutralCompound(), domain.CurveBenefit, 500, CurveSample{Value: 1.0, ConfidenceWidth: 0.5}, anxious)
	assert.Equal(t, 1.5, wide.ConfidenceWidth)
}
