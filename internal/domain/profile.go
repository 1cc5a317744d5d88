package domain

import "fmt"

// Tendency is a three-level categorical rating used for aromatization and
// anxiety sensitivity. Unknown values are rejected explicitly instead of
// silently mapping to a zero adjustment.
type Tendency string

const (
	TendencyLow      Tendency = "low"
	TendencyModerate Tendency = "moderate"
	TendencyHigh     Tendency = "high"
)

// Valid reports whether the tendency is a known value.
func (t Tendency) Valid() bool {
	switch t {
	case TendencyLow, TendencyModerate, TendencyHigh:
		return true
	}
	return false
}

// ExperienceLevel describes prior compound exposure.
type ExperienceLevel string

const (
	ExperienceNone           ExperienceLevel = "none"
	ExperienceSingleCompound ExperienceLevel = "single_compound"
	ExperienceMultiCompound  ExperienceLevel = "multi_compound"
	ExperienceVeteran        ExperienceLevel = "veteran"
)

// Valid reports whether the experience level is a known value.
func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceNone, ExperienceSingleCompound, ExperienceMultiCompound, ExperienceVeteran:
		return true
	}
	return false
}

// ScaleFactor names a personalization adjustment that lab mode can
// override with a custom multiplicative coefficient.
type ScaleFactor string

const (
	ScaleAge         ScaleFactor = "age"
	ScaleTraining    ScaleFactor = "training"
	ScaleSHBG        ScaleFactor = "shbg"
	ScaleAromatase   ScaleFactor = "aromatase"
	ScaleAnxiety     ScaleFactor = "anxiety"
	ScaleExperience  ScaleFactor = "experience"
	ScaleUncertainty ScaleFactor = "uncertainty"
)

// ScaleFactors lists every overridable factor.
var ScaleFactors = []ScaleFactor{
	ScaleAge, ScaleTraining, ScaleSHBG, ScaleAromatase,
	ScaleAnxiety, ScaleExperience, ScaleUncertainty,
}

// LabMode holds optional per-factor coefficient overrides. When disabled,
// every factor scales at 1.0.
type LabMode struct {
	Enabled bool                    `json:"enabled"`
	Scales  map[ScaleFactor]float64 `json:"scales,omitempty"`
}

// Scale returns the coefficient for a factor: 1.0 unless lab mode is
// enabled and an override exists.
func (m LabMode) Scale(f ScaleFactor) float64 {
	if !m.Enabled {
		return 1.0
	}
	if s, ok := m.Scales[f]; ok {
		return s
	}
	return 1.0
}

// Profile is the user's physiological and behavioral input to
// personalization. The engine only ever reads it; persistence belongs to
// the profiles module.
type Profile struct {
	Age           float64         `json:"age"`
	BodyweightKg  float64         `json:"bodyweight_kg"`
	YearsTraining float64         `json:"years_training"`
	SHBG          *float64        `json:"shbg,omitempty"`
	Aromatase     Tendency        `json:"aromatase"`
	Anxiety       Tendency        `json:"anxiety"`
	Experience    ExperienceLevel `json:"experience"`
	LabMode       LabMode         `json:"lab_mode"`
}

// DefaultProfile is the neutral responder template: every adjustment it
// derives is an identity transform, so curves pass through untouched.
// Tests and anonymous evaluations use it.
func DefaultProfile() Profile {
	return Profile{
		Age:           35,
		BodyweightKg:  85,
		YearsTraining: 3,
		Aromatase:     TendencyModerate,
		Anxiety:       TendencyModerate,
		Experience:    ExperienceMultiCompound,
	}
}

// Validate rejects unknown categorical values and out-of-range numbers.
func (p *Profile) Validate() error {
	if p.Age <= 0 || p.Age > 120 {
		return fmt.Errorf("age %.1f out of range", p.Age)
	}
	if p.BodyweightKg <= 0 || p.BodyweightKg > 300 {
		return fmt.Errorf("bodyweight %.1f out of range", p.BodyweightKg)
	}
	if p.YearsTraining < 0 {
		return fmt.Errorf("years training %.1f out of range", p.YearsTraining)
	}
	if !p.Aromatase.Valid() {
		return fmt.Errorf("unknown aromatase tendency %q", p.Aromatase)
	}
	if !p.Anxiety.Valid() {
		return fmt.Errorf("unknown anxiety tendency %q", p.Anxiety)
	}
	if !p.Experience.Valid() {
		return fmt.Errorf("unknown experience level %q", p.Experience)
	}
	if p.SHBG != nil && (*p.SHBG < 0 || *p.SHBG > 250) {
		return fmt.Errorf("shbg %.1f out of range", *p.SHBG)
	}
	return nil
}
