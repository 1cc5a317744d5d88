// Package domain contains the plain data model shared by all modules.
// The engine layer is pure and depends only on this package; repositories
// hydrate these types from SQLite and never hand out mutable references
// to catalog data.
package domain

import (
	"fmt"
	"math"
	"sort"
)

// AdministrationType categorizes how a compound is taken. Doses are
// interpreted in the compound's native unit: mg/week for injectables,
// mg/day for orals and ancillaries.
type AdministrationType string

const (
	AdministrationInjectable AdministrationType = "injectable"
	AdministrationOral       AdministrationType = "oral"
	AdministrationAncillary  AdministrationType = "ancillary"
)

// Valid reports whether the administration type is a known value.
func (a AdministrationType) Valid() bool {
	switch a {
	case AdministrationInjectable, AdministrationOral, AdministrationAncillary:
		return true
	}
	return false
}

// IsOral reports whether doses for this type are daily amounts.
func (a AdministrationType) IsOral() bool {
	return a == AdministrationOral || a == AdministrationAncillary
}

// CurveType selects which dose-response curve to evaluate.
type CurveType string

const (
	CurveBenefit CurveType = "benefit"
	CurveRisk    CurveType = "risk"
)

// CurvePoint is a single empirical sample on a dose-response curve.
// ConfidenceWidth is the half-width of the confidence band around Value.
type CurvePoint struct {
	Dose            float64 `json:"dose"`
	Value           float64 `json:"value"`
	ConfidenceWidth float64 `json:"confidence_width"`
}

// Curve is an ordered sequence of samples with strictly increasing doses.
type Curve []CurvePoint

// Validate checks structural soundness of the curve. An empty curve or a
// non-increasing dose sequence is a configuration error and must be
// rejected at catalog-load time, not tolerated at evaluation time.
func (c Curve) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("curve has no samples")
	}
	for i, p := range c {
		if math.IsNaN(p.Dose) || math.IsNaN(p.Value) || math.IsNaN(p.ConfidenceWidth) {
			return fmt.Errorf("curve sample %d contains NaN", i)
		}
		if p.Dose < 0 {
			return fmt.Errorf("curve sample %d has negative dose %.2f", i, p.Dose)
		}
		if i > 0 && p.Dose <= c[i-1].Dose {
			return fmt.Errorf("curve doses not strictly increasing at sample %d (%.2f after %.2f)", i, p.Dose, c[i-1].Dose)
		}
	}
	return nil
}

// MaxDose returns the highest sampled dose, or 0 for an empty curve.
func (c Curve) MaxDose() float64 {
	if len(c) == 0 {
		return 0
	}
	return c[len(c)-1].Dose
}

// PlateauDose returns the dose past which the curve is considered flat.
// The penultimate sample is used as the plateau proxy to avoid asymptote
// artifacts at the final extrapolated point.
func (c Curve) PlateauDose() float64 {
	if len(c) == 0 {
		return 0
	}
	if len(c) == 1 {
		return c[0].Dose
	}
	return c[len(c)-2].Dose
}

// Ester describes an esterified preparation of an injectable compound.
// Weight is the fraction of the raw dose that is active hormone.
type Ester struct {
	Label         string  `json:"label"`
	HalfLifeHours float64 `json:"half_life_hours"`
	Weight        float64 `json:"weight"`
}

// Compound is an immutable catalog entry: empirically derived benefit and
// risk curves plus the metadata the personalization and receptor models
// key off.
type Compound struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	AdministrationType AdministrationType `json:"administration_type"`
	BenefitCurve       Curve              `json:"benefit_curve"`
	RiskCurve          Curve              `json:"risk_curve"`

	// BindingAffinityNM is the dissociation constant in nM; smaller means
	// a stronger binder. Nil means the compound does not meaningfully
	// compete for receptor capacity.
	BindingAffinityNM *float64 `json:"binding_affinity_nm,omitempty"`

	// Personalization gates.
	Aromatizing    bool `json:"aromatizing"`
	NeuroSensitive bool `json:"neuro_sensitive"`
	SHBGSensitive  bool `json:"shbg_sensitive"`

	Esters                  map[string]Ester `json:"esters,omitempty"`
	DefaultEster            string           `json:"default_ester,omitempty"`
	DefaultFrequencyPerWeek float64          `json:"default_frequency_per_week,omitempty"`
}

// Validate checks the compound for configuration errors.
func (c *Compound) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("compound has empty id")
	}
	if !c.AdministrationType.Valid() {
		return fmt.Errorf("compound %s: unknown administration type %q", c.ID, c.AdministrationType)
	}
	if err := c.BenefitCurve.Validate(); err != nil {
		return fmt.Errorf("compound %s: benefit curve: %w", c.ID, err)
	}
	if err := c.RiskCurve.Validate(); err != nil {
		return fmt.Errorf("compound %s: risk curve: %w", c.ID, err)
	}
	if c.BindingAffinityNM != nil && *c.BindingAffinityNM <= 0 {
		return fmt.Errorf("compound %s: binding affinity must be positive, got %.3f", c.ID, *c.BindingAffinityNM)
	}
	if c.DefaultEster != "" {
		if _, ok := c.Esters[c.DefaultEster]; !ok {
			return fmt.Errorf("compound %s: default ester %q not defined", c.ID, c.DefaultEster)
		}
	}
	return nil
}

// CurveFor returns the requested curve.
func (c *Compound) CurveFor(t CurveType) Curve {
	if t == CurveRisk {
		return c.RiskCurve
	}
	return c.BenefitCurve
}

// EsterWeight resolves the active-hormone weight for the named ester,
// falling back to the default ester and finally to 1.0 (unesterified).
func (c *Compound) EsterWeight(name string) float64 {
	if name == "" {
		name = c.DefaultEster
	}
	if e, ok := c.Esters[name]; ok && e.Weight > 0 {
		return e.Weight
	}
	return 1.0
}

// EsterHalfLifeHours resolves the half-life for the named ester, falling
// back to the default ester. Returns 0 when no ester data exists.
func (c *Compound) EsterHalfLifeHours(name string) float64 {
	if name == "" {
		name = c.DefaultEster
	}
	if e, ok := c.Esters[name]; ok {
		return e.HalfLifeHours
	}
	return 0
}

// StackEntry is one compound at one dose within a stack. Dose is in the
// compound's native unit. A stack never contains the same compound twice;
// the stacks module rejects duplicates at the boundary.
type StackEntry struct {
	CompoundID       string  `json:"compound_id"`
	Dose             float64 `json:"dose"`
	FrequencyPerWeek float64 `json:"frequency_per_week,omitempty"`
	Ester            string  `json:"ester,omitempty"`
}

// ValidDose reports whether the entry's dose is usable in aggregation.
// Negative and NaN doses are excluded from totals rather than crashing
// the evaluation (UI validation should prevent them, but the engine must
// never propagate NaN).
func (e StackEntry) ValidDose() bool {
	return !math.IsNaN(e.Dose) && !math.IsInf(e.Dose, 0) && e.Dose >= 0
}

// SortedCompoundIDs returns the unique compound ids of a stack in lexical
// order. Pair iteration in the synergy aggregator runs over this ordering
// so evaluation results are deterministic regardless of input order.
func SortedCompoundIDs(entries []StackEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.CompoundID]; ok {
			continue
		}
		seen[e.CompoundID] = struct{}{}
		ids = append(ids, e.CompoundID)
	}
	sort.Strings(ids)
	return ids
}
