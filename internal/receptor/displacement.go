package receptor

import (
	"fmt"
	"math"
	"sort"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
)

// DefaultTotalCapacity is the default daily receptor capacity in mg of
// testosterone equivalents.
const DefaultTotalCapacity = 150.0

const (
	// referenceKd is the dissociation constant of the reference binder;
	// binding efficiency is measured against it.
	referenceKd = 1.0

	// defaultWeakKd is assumed for compounds without published affinity
	// data. It makes them very weak binders rather than non-binders.
	defaultWeakKd = 10.0
)

// CompoundSource resolves compound definitions; the catalog repository
// satisfies it.
type CompoundSource interface {
	Compound(id string) (*domain.Compound, bool)
}

// Segment is one compound's share of the competitive allocation.
type Segment struct {
	CompoundID   string  `json:"compound_id"`
	Name         string  `json:"name"`
	Demand       float64 `json:"demand"`
	BoundAmount  float64 `json:"bound_amount"`
	SpillAmount  float64 `json:"spill_amount"`
	Kd           float64 `json:"kd"`
	BindingScore float64 `json:"binding_score"`

	// IsDisplaced means the compound lost capacity to stronger binders:
	// it spilled even though it could have bound more of its own demand.
	// A weak binder spilling purely on its own efficiency is not
	// displaced.
	IsDisplaced bool `json:"is_displaced"`
}

// DisplacementState is the full competitive allocation of one stack
// against a finite daily capacity.
type DisplacementState struct {
	Segments       []Segment `json:"segments"`
	TotalBound     float64   `json:"total_bound"`
	TotalSpillover float64   `json:"total_spillover"`
	TotalCapacity  float64   `json:"total_capacity"`
	IsSaturated    bool      `json:"is_saturated"`

	// Warning names the strongest fully-bound binder and the weakest
	// displaced one when capacity ran out; empty otherwise.
	Warning string `json:"warning,omitempty"`
}

// CalculateReceptorState allocates totalCapacity across the stack's
// compounds, strongest binder first.
//
// Each compound's demand is its dose normalized to a daily equivalent.
// Allocation walks the descending binding-score order (ties broken by
// compound id so the result is deterministic), binding at most
// demand * min(1, referenceKd/ownKd) and never more than the capacity
// still remaining.
//
// Invariants: sum of bound never exceeds totalCapacity; bound + spill
// equals demand for every compound.
func CalculateReceptorState(entries []domain.StackEntry, totalCapacity float64, catalog CompoundSource) DisplacementState {
	segments := make([]Segment, 0, len(entries))
	for _, entry := range entries {
		compound, ok := catalog.Compound(entry.CompoundID)
		if !ok || !entry.ValidDose() {
			continue
		}

		kd := defaultWeakKd
		if compound.BindingAffinityNM != nil && *compound.BindingAffinityNM > 0 {
			kd = *compound.BindingAffinityNM
		}

		segments = append(segments, Segment{
			CompoundID:   entry.CompoundID,
			Name:         compound.Name,
			Demand:       dailyDemand(compound, entry),
			Kd:           kd,
			BindingScore: 1 / kd,
		})
	}

	sort.SliceStable(segments, func(i, j int) bool {
		if segments[i].BindingScore != segments[j].BindingScore {
			return segments[i].BindingScore > segments[j].BindingScore
		}
		return segments[i].CompoundID < segments[j].CompoundID
	})

	state := DisplacementState{
		Segments:      segments,
		TotalCapacity: totalCapacity,
	}

	remaining := totalCapacity
	anyDisplaced := false
	for i := range state.Segments {
		seg := &state.Segments[i]

		efficiency := math.Min(1, referenceKd/seg.Kd)
		potential := seg.Demand * efficiency
		seg.BoundAmount = math.Min(potential, remaining)
		seg.SpillAmount = seg.Demand - seg.BoundAmount
		remaining = math.Max(0, remaining-seg.BoundAmount)

		seg.IsDisplaced = seg.SpillAmount > 0 && seg.BoundAmount < potential
		anyDisplaced = anyDisplaced || seg.IsDisplaced

		state.TotalBound += seg.BoundAmount
		state.TotalSpillover += seg.SpillAmount
	}

	state.IsSaturated = remaining == 0 && totalCapacity > 0
	if state.IsSaturated && anyDisplaced {
		state.Warning = displacementWarning(state.Segments)
	}
	return state
}

// dailyDemand converts a dose in the compound's native unit to mg/day of
// active compound. Oral doses are daily already; injectable and ancillary
// doses are weekly and carry the ester's active weight.
func dailyDemand(compound *domain.Compound, entry domain.StackEntry) float64 {
	if compound.AdministrationType.IsOral() {
		return entry.Dose
	}
	ester := entry.Ester
	if ester == "" {
		ester = compound.DefaultEster
	}
	return entry.Dose * compound.EsterWeight(ester) / 7
}

// displacementWarning names the strongest fully-bound competitor (the
// bully) and the weakest displaced one (the victim). Segments are already
// sorted strongest first.
func displacementWarning(segments []Segment) string {
	var bully *Segment
	for i := range segments {
		s := &segments[i]
		if s.BoundAmount == s.Demand && s.Demand > 0 && s.BindingScore > 1/referenceKd {
			bully = s
			break
		}
	}

	var victim *Segment
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i].IsDisplaced {
			victim = &segments[i]
			break
		}
	}
	if victim == nil {
		return ""
	}
	if bully != nil && bully.CompoundID != victim.CompoundID {
		return fmt.Sprintf("%s is displacing %s", bully.Name, victim.Name)
	}
	return fmt.Sprintf("%s is being displaced due to saturation", victim.Name)
}
