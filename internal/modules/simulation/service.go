// Package simulation produces weekly systemic-load series: the active
// dose ramping toward steady state under ester kinetics, with the
// receptor saturation state at each week.
package simulation

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
	"github.com/dhasakgbb/physioSim-sub001/internal/receptor"
)

// MaxWeeks bounds simulation length; beyond a year the adaptation model
// has nothing new to say.
const MaxWeeks = 52

// WeekState is the systemic load and receptor state at one week mark.
type WeekState struct {
	Week       int                      `json:"week"`
	ActiveDose float64                  `json:"active_dose"`
	Saturation receptor.SaturationState `json:"saturation"`
}

// Series is a full simulation run.
type Series struct {
	CompoundID  string      `json:"compound_id"`
	Ester       string      `json:"ester"`
	Dose        float64     `json:"dose"`
	SteadyState float64     `json:"steady_state"`
	Weeks       []WeekState `json:"weeks"`
}

// Catalog resolves compounds; the catalog repository satisfies it.
type Catalog interface {
	Compound(id string) (*domain.Compound, bool)
}

// Service runs weekly load simulations.
type Service struct {
	catalog Catalog
	log     zerolog.Logger
}

// NewService creates a new simulation service.
func NewService(catalog Catalog, log zerolog.Logger) *Service {
	return &Service{
		catalog: catalog,
		log:     log.With().Str("service", "simulation").Logger(),
	}
}

// Simulate computes the weekly series for one compound at a constant
// dose. Dose is in the compound's native unit; orals are converted to a
// weekly intake before the ramp.
func (s *Service) Simulate(compoundID string, dose float64, ester string, weeks int) (*Series, error) {
	compound, ok := s.catalog.Compound(compoundID)
	if !ok {
		return nil, fmt.Errorf("unknown compound %s", compoundID)
	}
	if dose < 0 || math.IsNaN(dose) || math.IsInf(dose, 0) {
		return nil, fmt.Errorf("invalid dose")
	}
	if weeks < 1 || weeks > MaxWeeks {
		return nil, fmt.Errorf("weeks must be between 1 and %d", MaxWeeks)
	}

	if ester == "" {
		ester = compound.DefaultEster
	}
	steady := weeklyIntake(compound, dose) * compound.EsterWeight(ester)
	halfLife := compound.EsterHalfLifeHours(ester)

	series := &Series{
		CompoundID:  compoundID,
		Ester:       ester,
		Dose:        dose,
		SteadyState: steady,
		Weeks:       make([]WeekState, 0, weeks+1),
	}
	for week := 0; week <= weeks; week++ {
		active := steady * rampFraction(week, halfLife)
		series.Weeks = append(series.Weeks, WeekState{
			Week:       week,
			ActiveDose: active,
			Saturation: receptor.CalculateSaturation(active, receptor.DefaultBaseCapacity, float64(week)),
		})
	}
	return series, nil
}

// WeekAt computes a single week's state without materializing the series.
func (s *Service) WeekAt(compoundID string, dose float64, ester string, week int) (*WeekState, error) {
	if week < 0 || week > MaxWeeks {
		return nil, fmt.Errorf("week must be between 0 and %d", MaxWeeks)
	}
	series, err := s.Simulate(compoundID, dose, ester, maxInt(week, 1))
	if err != nil {
		return nil, err
	}
	state := series.Weeks[week]
	return &state, nil
}

// rampFraction is the accumulation toward steady state after the given
// number of weeks: 1 - 0.5^(elapsedHours/halfLifeHours). A missing half
// life means the compound clears within a dosing interval and is treated
// as instantly at steady state.
func rampFraction(week int, halfLifeHours float64) float64 {
	if week <= 0 {
		return 0
	}
	if halfLifeHours <= 0 {
		return 1
	}
	elapsedHours := float64(week) * 7 * 24
	return 1 - math.Pow(0.5, elapsedHours/halfLifeHours)
}

func weeklyIntake(compound *domain.Compound, dose float64) float64 {
	if compound.AdministrationType.IsOral() {
		return dose * 7
	}
	return dose
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
