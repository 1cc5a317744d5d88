package evaluation

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
)

// plateauValueDelta is the largest value change over the curve's final
// segment that still counts as a flat slope for the plateau flag.
const plateauValueDelta = 0.15

// Engine evaluates stacks against an injected catalog and interaction
// matrix. All methods are deterministic functions of their inputs; the
// only state is the bounded result cache.
type Engine struct {
	catalog Catalog
	matrix  Matrix
	cache   *ResultCache
	log     zerolog.Logger
}

// NewEngine creates an evaluation engine. cacheSize bounds the memoized
// result count; zero disables memoization.
func NewEngine(catalog Catalog, matrix Matrix, cacheSize int, log zerolog.Logger) *Engine {
	return &Engine{
		catalog: catalog,
		matrix:  matrix,
		cache:   NewResultCache(cacheSize),
		log:     log.With().Str("component", "evaluation").Logger(),
	}
}

// Catalog returns the engine's injected compound source so collaborators
// feeding the receptor models resolve compounds identically.
func (e *Engine) Catalog() Catalog {
	return e.catalog
}

// EvaluateStack computes the personalized benefit/risk totals, pairwise
// synergy deltas and net score for a stack. An empty stack, or one where
// every entry is unusable, returns nil so callers can distinguish "no
// stack" from a stack that nets to zero.
//
// Entries referencing unknown compounds and entries with malformed doses
// are skipped rather than aborting the whole evaluation. Duplicate
// compound ids are a boundary violation and rejected with an error.
func (e *Engine) EvaluateStack(entries []domain.StackEntry, profile domain.Profile) (*StackResult, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if _, dup := seen[entry.CompoundID]; dup {
			return nil, fmt.Errorf("duplicate compound %s in stack", entry.CompoundID)
		}
		seen[entry.CompoundID] = struct{}{}
	}

	if cached, ok := e.cache.Get(Signature(entries, profile)); ok {
		return cached, nil
	}

	result := &StackResult{
		ByCompound: make(map[string]CompoundResult, len(entries)),
	}

	for _, entry := range entries {
		compound, ok := e.catalog.Compound(entry.CompoundID)
		if !ok {
			e.log.Warn().Str("compound", entry.CompoundID).Msg("unknown compound in stack, skipping")
			continue
		}
		if !entry.ValidDose() {
			e.log.Warn().Str("compound", entry.CompoundID).Float64("dose", entry.Dose).
				Msg("invalid dose in stack, skipping")
			continue
		}

		benefit, err := e.evaluatePersonalized(compound, domain.CurveBenefit, entry.Dose, profile)
		if err != nil {
			return nil, err
		}
		risk, err := e.evaluatePersonalized(compound, domain.CurveRisk, entry.Dose, profile)
		if err != nil {
			return nil, err
		}

		result.ByCompound[entry.CompoundID] = CompoundResult{
			Benefit: benefit,
			Risk:    risk,
			Dose:    entry.Dose,
			Meta:    curveMeta(compound.BenefitCurve, entry.Dose),
		}
		result.Totals.TotalBenefit += benefit.Value
		result.Totals.TotalRisk += risk.Value
	}

	if len(result.ByCompound) == 0 {
		return nil, nil
	}

	e.applySynergy(result)
	e.finalize(&result.Totals)

	e.cache.Put(Signature(entries, profile), result)
	return result, nil
}

// evaluatePersonalized runs the curve lookup and personalization transform
// for one compound and curve type.
func (e *Engine) evaluatePersonalized(compound *domain.Compound, t domain.CurveType, dose float64, profile domain.Profile) (CurveSample, error) {
	base, err := EvaluateCurve(compound.CurveFor(t), dose)
	if err != nil {
		return CurveSample{}, fmt.Errorf("compound %s %s curve: %w", compound.ID, t, err)
	}
	return Personalize(compound, t, dose, base, profile), nil
}

// applySynergy folds every pair's fractional synergy record into absolute
// deltas. Each fraction scales against that pair's own combined base
// contribution, not the aggregate stack totals, so adding an unrelated
// third compound never inflates an existing pair's synergy.
func (e *Engine) applySynergy(result *StackResult) {
	ids := make([]string, 0, len(result.ByCompound))
	for id := range result.ByCompound {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			rec := e.Interaction(ids[i], ids[j])
			if rec == nil {
				continue
			}

			a, b := result.ByCompound[ids[i]], result.ByCompound[ids[j]]
			benefitDelta := rec.BenefitSynergy * (a.Benefit.Value + b.Benefit.Value)
			riskDelta := rec.RiskSynergy * (a.Risk.Value + b.Risk.Value)

			result.Totals.BenefitSynergyDelta += benefitDelta
			result.Totals.RiskSynergyDelta += riskDelta
			result.Pairs = append(result.Pairs, PairSynergy{
				PairKey:      domain.PairKey(ids[i], ids[j]),
				Rating:       rec.Rating,
				BenefitDelta: benefitDelta,
				RiskDelta:    riskDelta,
			})

			if rec.Rating == domain.RatingDangerous || rec.Rating == domain.RatingForbidden {
				result.Warnings = append(result.Warnings, StackWarning{
					PairKey: domain.PairKey(ids[i], ids[j]),
					Rating:  rec.Rating,
					Message: warningMessage(ids[i], ids[j], rec),
				})
			}
		}
	}
}

// finalize derives the adjusted totals, ratio and net score.
func (e *Engine) finalize(t *StackTotals) {
	t.AdjustedBenefit = math.Max(0, t.TotalBenefit+t.BenefitSynergyDelta)
	t.AdjustedRisk = math.Max(0, t.TotalRisk+t.RiskSynergyDelta)

	if t.AdjustedRisk > 0 {
		t.BenefitRiskRatio = t.AdjustedBenefit / t.AdjustedRisk
	} else {
		t.BenefitRiskRatio = t.AdjustedBenefit
	}
	t.NetScore = t.AdjustedBenefit - t.AdjustedRisk
}

// curveMeta derives the evidence-range flags for a dose against the
// compound's benefit curve. Beyond-evidence fires past the last sampled
// dose; nearing-plateau fires once the dose reaches the penultimate sample
// of a curve whose final segment is materially flat.
func curveMeta(curve domain.Curve, dose float64) CompoundMeta {
	meta := CompoundMeta{}
	if len(curve) < 2 {
		return meta
	}

	meta.BeyondEvidence = dose > curve.MaxDose()

	last := curve[len(curve)-1]
	penultimate := curve[len(curve)-2]
	flat := math.Abs(last.Value-penultimate.Value) <= plateauValueDelta
	meta.NearingPlateau = flat && dose >= penultimate.Dose

	return meta
}

func warningMessage(a, b string, rec *domain.InteractionRecord) string {
	if rec.Description != "" {
		return rec.Description
	}
	return fmt.Sprintf("combining %s with %s is rated %s", a, b, rec.Rating)
}
