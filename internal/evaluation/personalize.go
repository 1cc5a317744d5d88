package evaluation

import (
	"math"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
)

// =============================================================================
// PERSONALIZATION COEFFICIENTS
// =============================================================================
// Each adjustment is independent and gated by a named lab-mode scale
// factor (1.0 by default). Values mirror the calibrated response model:
// age shifts benefit down / risk up around a neutral reference age,
// training history lifts benefit and tightens confidence, SHBG only
// bites on SHBG-sensitive compounds, aromatization and anxiety only on
// compounds flagged for them, and experience models desensitization.

const (
	// Neutral reference points for profile-derived offsets.
	neutralAge      = 35.0
	ageSpread       = 35.0
	neutralSHBG     = 30.0
	shbgSpread      = 40.0
	neutralWeightKg = 85.0
	weightSpread    = 40.0
	neutralYears    = 3.0
	yearsSpread     = 9.0

	// Age effect.
	ageBenefitSlope  = 0.25
	ageRiskSlopeUp   = 0.40 // risk acceleration above neutral age
	ageRiskSlopeDown = 0.15 // risk relief below neutral age
	ageRiskCIWiden   = 0.20

	// Training-load effect.
	trainingBenefitBase  = 0.15
	trainingBenefitSlope = 0.35
	trainingCITighten    = 0.20
	trainingRiskRelief   = 0.10
	trainingWeightShare  = 0.6
	trainingYearsShare   = 0.4

	// SHBG effect (SHBG-sensitive compounds only).
	shbgBenefitSlope = 0.40
	shbgRiskSlope    = 0.15
	shbgCIWiden      = 0.20

	// Aromatization effect (aromatizing compounds only).
	aromataseRiskSlope   = 0.80
	aromataseCIWiden     = 0.40
	aromataseBenefitDamp = 0.15

	// Anxiety effect (neuro-sensitive compounds only). Early doses are
	// disproportionately affected.
	anxietyEarlyDoseCutoff = 300.0
	anxietyEarlyScalar     = 1.25
	anxietyLateScalar      = 1.10
	anxietyCIWiden         = 0.50

	// Output bounds. A non-zero confidence width never personalizes below
	// the floor: the model must not report impossible perfect certainty.
	confidenceFloor   = 0.1
	confidenceCeiling = 1.5
	valueCeiling      = 5.5
)

// tendencyDelta maps the categorical tendency ratings onto signed offsets.
func tendencyDelta(t domain.Tendency) float64 {
	switch t {
	case domain.TendencyLow:
		return -0.2
	case domain.TendencyHigh:
		return 0.35
	default:
		return 0
	}
}

// anxietyDelta uses a slightly different low-end relief than aromatase.
func anxietyDelta(t domain.Tendency) float64 {
	switch t {
	case domain.TendencyLow:
		return -0.1
	case domain.TendencyHigh:
		return 0.35
	default:
		return 0
	}
}

// experienceImpact holds the benefit/risk fractions applied per level.
type experienceImpact struct {
	benefit float64
	risk    float64
}

// experienceImpactFor is exhaustive over the enumerated levels; unknown
// levels fall back to the single-compound baseline (profile validation
// rejects them before they reach here).
func experienceImpactFor(level domain.ExperienceLevel) experienceImpact {
	switch level {
	case domain.ExperienceNone:
		return experienceImpact{benefit: 0.18, risk: 0.35}
	case domain.ExperienceSingleCompound:
		return experienceImpact{benefit: 0.08, risk: 0.15}
	case domain.ExperienceMultiCompound:
		// Neutral reference responder; the default profile is an identity
		// transform on the published curves.
		return experienceImpact{benefit: 0, risk: 0}
	case domain.ExperienceVeteran:
		return experienceImpact{benefit: -0.12, risk: 0.0}
	}
	return experienceImpact{benefit: 0.08, risk: 0.15}
}

func clamp(v, min, max float64) float64 {
	return math.Min(max, math.Max(min, v))
}

// ageOffset normalizes age into [-1, 1] around the neutral reference.
func ageOffset(p domain.Profile) float64 {
	return clamp((p.Age-neutralAge)/ageSpread, -1, 1)
}

// trainingScore derives a [0, 1] conditioning score from body mass and
// years under the bar.
func trainingScore(p domain.Profile) float64 {
	weight := clamp((p.BodyweightKg-neutralWeightKg)/weightSpread, 0, 1)
	years := clamp((p.YearsTraining-neutralYears)/yearsSpread, 0, 1)
	return clamp(weight*trainingWeightShare+years*trainingYearsShare, 0, 1)
}

// shbgOffset normalizes SHBG into [-1, 1] around the neutral reference.
// A missing lab value contributes nothing.
func shbgOffset(p domain.Profile) float64 {
	if p.SHBG == nil {
		return 0
	}
	return clamp((*p.SHBG-neutralSHBG)/shbgSpread, -1, 1)
}

// Personalize transforms a raw curve sample using the user profile.
// compound supplies the gating flags (aromatizing, neuro-sensitive,
// SHBG-sensitive); curveType selects the benefit or risk adjustment path;
// dose feeds the early-dose anxiety scalar. The transform is monotonic in
// each profile input and clamps its outputs to the valid ranges.
func Personalize(compound *domain.Compound, curveType domain.CurveType, dose float64, base CurveSample, profile domain.Profile) CurveSample {
	value := base.Value
	ciMultiplier := 1.0

	ageDelta := ageOffset(profile)
	training := trainingScore(profile)
	shbgDelta := shbgOffset(profile)
	experience := experienceImpactFor(profile.Experience)

	ageScale := profile.LabMode.Scale(domain.ScaleAge)
	trainingScale := profile.LabMode.Scale(domain.ScaleTraining)
	shbgScale := profile.LabMode.Scale(domain.ScaleSHBG)
	aromataseScale := profile.LabMode.Scale(domain.ScaleAromatase)
	anxietyScale := profile.LabMode.Scale(domain.ScaleAnxiety)
	experienceScale := profile.LabMode.Scale(domain.ScaleExperience)
	uncertaintyScale := profile.LabMode.Scale(domain.ScaleUncertainty)

	if curveType == domain.CurveBenefit {
		// Older athletes accrue benefit slower; younger respond faster.
		value *= 1 - ageDelta*ageBenefitSlope*ageScale

		// Conditioning lifts the benefit baseline and narrows uncertainty.
		if training > 0 {
			value += trainingBenefitBase + training*trainingBenefitSlope*trainingScale
			ciMultiplier *= 1 - training*trainingCITighten*trainingScale
		}

		value *= 1 + experience.benefit*experienceScale
	} else {
		// Age compounds risk; the upward slope is steeper than the relief
		// below the reference age.
		if ageDelta > 0 {
			value *= 1 + ageDelta*ageRiskSlopeUp*ageScale
			ciMultiplier += ageDelta * ageRiskCIWiden * ageScale
		} else {
			value *= 1 + ageDelta*ageRiskSlopeDown*ageScale
		}

		value *= 1 - training*trainingRiskRelief*trainingScale
		value *= 1 + experience.risk*experienceScale
	}

	if compound.SHBGSensitive && shbgDelta != 0 {
		if curveType == domain.CurveBenefit {
			value *= 1 - shbgDelta*shbgBenefitSlope*shbgScale
		} else {
			value *= 1 + shbgDelta*shbgRiskSlope*shbgScale
		}
		ciMultiplier += math.Abs(shbgDelta) * shbgCIWiden * shbgScale
	}

	if compound.Aromatizing {
		aromDelta := tendencyDelta(profile.Aromatase)
		if curveType == domain.CurveRisk {
			value *= 1 + aromDelta*aromataseRiskSlope*aromataseScale
			ciMultiplier += math.Abs(aromDelta) * aromataseCIWiden * aromataseScale
		} else if aromDelta > 0 {
			// High aromatization blunts perceived benefit (water retention
			// masks lean gain).
			value *= 1 - aromDelta*aromataseBenefitDamp*aromataseScale
		}
	}

	if compound.NeuroSensitive && curveType == domain.CurveRisk {
		anxDelta := anxietyDelta(profile.Anxiety)
		if anxDelta != 0 {
			scalar := anxietyLateScalar
			if dose <= anxietyEarlyDoseCutoff {
				scalar = anxietyEarlyScalar
			}
			value *= 1 + anxDelta*scalar*anxietyScale
			ciMultiplier += math.Abs(anxDelta) * anxietyCIWiden * anxietyScale
		}
	}

	ci := base.ConfidenceWidth
	if ci > 0 && ci < confidenceFloor {
		ci = confidenceFloor
	}

	return CurveSample{
		Value:           clamp(value, 0, valueCeiling),
		ConfidenceWidth: clamp(ci*ciMultiplier*uncertaintyScale, 0, confidenceCeiling),
	}
}
