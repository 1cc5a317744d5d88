// Package sweetspot locates the dose that maximizes a compound's
// personalized net score, and the dose range that stays near the peak.
package sweetspot

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
	"github.com/dhasakgbb/physioSim-sub001/internal/evaluation"
	"github.com/dhasakgbb/physioSim-sub001/pkg/formulas"
)

const (
	// Smoothing window for the net-score series; short enough to keep
	// the true peak, long enough to suppress interpolation kinks.
	emaPeriod = 3

	// A dose belongs to the sweet range when its smoothed net score
	// reaches this fraction of the peak.
	rangeFraction = 0.90

	// Uniform grid merged into the sweep so sparse tails of a curve still
	// get sampled between distant published points.
	sweepGridPoints = 25
)

// Point is one evaluated dose on the sweep.
type Point struct {
	Dose     float64 `json:"dose"`
	Benefit  float64 `json:"benefit"`
	Risk     float64 `json:"risk"`
	Net      float64 `json:"net"`
	Smoothed float64 `json:"smoothed"`
}

// Result describes the located sweet spot.
type Result struct {
	CompoundID string  `json:"compound_id"`
	BestDose   float64 `json:"best_dose"`
	BestNet    float64 `json:"best_net"`
	RangeLow   float64 `json:"range_low"`
	RangeHigh  float64 `json:"range_high"`
	Points     []Point `json:"points"`
}

// Catalog resolves compounds; the catalog repository satisfies it.
type Catalog interface {
	Compound(id string) (*domain.Compound, bool)
}

// Service runs personalized dose sweeps.
type Service struct {
	catalog Catalog
	log     zerolog.Logger
}

// NewService creates a new sweet-spot service.
func NewService(catalog Catalog, log zerolog.Logger) *Service {
	return &Service{
		catalog: catalog,
		log:     log.With().Str("service", "sweetspot").Logger(),
	}
}

// Find sweeps the compound's curves under the given profile and returns
// the dose with the highest smoothed net score plus the surrounding range
// still within 90% of the peak.
func (s *Service) Find(compoundID string, profile domain.Profile) (*Result, error) {
	compound, ok := s.catalog.Compound(compoundID)
	if !ok {
		return nil, fmt.Errorf("unknown compound %s", compoundID)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	doses := sweepDoses(compound)
	points := make([]Point, 0, len(doses))
	nets := make([]float64, 0, len(doses))
	for _, dose := range doses {
		benefit, err := s.personalized(compound, domain.CurveBenefit, dose, profile)
		if err != nil {
			return nil, err
		}
		risk, err := s.personalized(compound, domain.CurveRisk, dose, profile)
		if err != nil {
			return nil, err
		}
		net := benefit - risk
		points = append(points, Point{Dose: dose, Benefit: benefit, Risk: risk, Net: net})
		nets = append(nets, net)
	}

	smoothed := formulas.SmoothEMA(nets, emaPeriod)
	for i := range points {
		points[i].Smoothed = smoothed[i]
	}

	best := formulas.ArgMax(smoothed)
	if best < 0 {
		return nil, fmt.Errorf("compound %s produced no evaluable doses", compoundID)
	}

	low, high := sweetRange(points, best)
	return &Result{
		CompoundID: compoundID,
		BestDose:   points[best].Dose,
		BestNet:    points[best].Smoothed,
		RangeLow:   low,
		RangeHigh:  high,
		Points:     points,
	}, nil
}

func (s *Service) personalized(compound *domain.Compound, t domain.CurveType, dose float64, profile domain.Profile) (float64, error) {
	base, err := evaluation.EvaluateCurve(compound.CurveFor(t), dose)
	if err != nil {
		return 0, fmt.Errorf("compound %s %s curve: %w", compound.ID, t, err)
	}
	return evaluation.Personalize(compound, t, dose, base, profile).Value, nil
}

// sweepDoses builds the sweep grid: the union of both curves' sample
// doses, the midpoint between each adjacent pair, and a uniform grid
// across the full dose span. Sampling between published points catches
// peaks the raw samples straddle.
func sweepDoses(compound *domain.Compound) []float64 {
	seen := make(map[float64]struct{})
	var doses []float64
	add := func(d float64) {
		if _, ok := seen[d]; ok {
			return
		}
		seen[d] = struct{}{}
		doses = append(doses, d)
	}

	for _, curve := range []domain.Curve{compound.BenefitCurve, compound.RiskCurve} {
		for _, p := range curve {
			add(p.Dose)
		}
	}
	sort.Float64s(doses)

	n := len(doses)
	for i := 1; i < n; i++ {
		add((doses[i-1] + doses[i]) / 2)
	}

	if n > 0 {
		for _, d := range formulas.DoseSweep(doses[0], doses[n-1], sweepGridPoints) {
			add(d)
		}
	}

	sort.Float64s(doses)
	return doses
}

// sweetRange walks outward from the peak while the smoothed net score
// stays above the range fraction of the peak value.
func sweetRange(points []Point, best int) (low, high float64) {
	threshold := points[best].Smoothed * rangeFraction
	if points[best].Smoothed < 0 {
		// A negative peak means no dose is worth taking; collapse the
		// range onto the least bad dose.
		return points[best].Dose, points[best].Dose
	}

	lo, hi := best, best
	for lo > 0 && points[lo-1].Smoothed >= threshold {
		lo--
	}
	for hi < len(points)-1 && points[hi+1].Smoothed >= threshold {
		hi++
	}
	return points[lo].Dose, points[hi].Dose
}
