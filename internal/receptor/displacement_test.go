package receptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
)

type mapCatalog map[string]*domain.Compound

func (m mapCatalog) Compound(id string) (*domain.Compound, bool) {
	c, ok := m[id]
	return c, ok
}

func binder(id string, kd float64, admin domain.AdministrationType) *domain.Compound {
	return &domain.Compound{
		ID:                 id,
		Name:               id,
		AdministrationType: admin,
		BindingAffinityNM:  &kd,
	}
}

func segmentByID(t *testing.T, state DisplacementState, id string) Segment {
	t.Helper()
	for _, s := range state.Segments {
		if s.CompoundID == id {
			return s
		}
	}
	t.Fatalf("segment %s not found", id)
	return Segment{}
}

func TestCalculateReceptorState_StrongBinderServicedFirst(t *testing.T) {
	catalog := mapCatalog{
		"strong": binder("strong", 0.5, domain.AdministrationInjectable),
		"weak":   binder("weak", 2.0, domain.AdministrationInjectable),
	}

	// 700/wk each -> 100/day each, capacity 120 total.
	state := CalculateReceptorState([]domain.StackEntry{
		{CompoundID: "weak", Dose: 700},
		{CompoundID: "strong", Dose: 700},
	}, 120, catalog)

	require.Len(t, state.Segments, 2)
	// Sorted strongest first regardless of input order.
	assert.Equal(t, "strong", state.Segments[0].CompoundID)

	strong := segmentByID(t, state, "strong")
	weak := segmentByID(t, state, "weak")

	// The strong binder reaches its full demand before the weak one gets
	// any capacity.
	assert.InDelta(t, 100.0, strong.BoundAmount, 1e-9)
	assert.InDelta(t, 20.0, weak.BoundAmount, 1e-9)
	assert.True(t, weak.IsDisplaced)
	assert.False(t, strong.IsDisplaced)
	assert.True(t, state.IsSaturated)
}

func TestCalculateReceptorState_Conservation(t *testing.T) {
	catalog := mapCatalog{
		"a": binder("a", 0.4, domain.AdministrationInjectable),
		"b": binder("b", 1.0, domain.AdministrationInjectable),
		"c": binder("c", 5.0, domain.AdministrationOral),
	}
	entries := []domain.StackEntry{
		{CompoundID: "a", Dose: 500},
		{CompoundID: "b", Dose: 700},
		{CompoundID: "c", Dose: 50},
	}

	for _, capacity := range []float64{0, 50, 150, 10000} {
		state := CalculateReceptorState(entries, capacity, catalog)

		var demand float64
		for _, s := range state.Segments {
			demand += s.Demand
			assert.InDelta(t, s.Demand, s.BoundAmount+s.SpillAmount, 1e-9)
		}
		assert.LessOrEqual(t, state.TotalBound, capacity+1e-9)
		assert.InDelta(t, demand, state.TotalBound+state.TotalSpillover, 1e-9)
	}
}

func TestCalculateReceptorState_BindingEfficiencyCapsWeakBinders(t *testing.T) {
	catalog := mapCatalog{
		"weak": binder("weak", 4.0, domain.AdministrationInjectable),
	}

	// 280/wk -> 40/day, efficiency 1/4 -> at most 10 binds even with
	// abundant capacity.
	state := CalculateReceptorState([]domain.StackEntry{
		{CompoundID: "weak", Dose: 280},
	}, 1000, catalog)

	weak := segmentByID(t, state, "weak")
	assert.InDelta(t, 10.0, weak.BoundAmount, 1e-9)
	assert.InDelta(t, 30.0, weak.SpillAmount, 1e-9)
	// Spill from its own weak affinity, not from competition.
	assert.False(t, weak.IsDisplaced)
	assert.Empty(t, state.Warning)
}

func TestCalculateReceptorState_MissingAffinityDefaultsWeak(t *testing.T) {
	noAffinity := &domain.Compound{
		ID:                 "mystery",
		Name:               "mystery",
		AdministrationType: domain.AdministrationInjectable,
	}
	catalog := mapCatalog{"mystery": noAffinity}

	state := CalculateReceptorState([]domain.StackEntry{
		{CompoundID: "mystery", Dose: 700},
	}, 1000, catalog)

	seg := segmentByID(t, state, "mystery")
	assert.Equal(t, defaultWeakKd, seg.Kd)
	assert.InDelta(t, 100.0*(1.0/defaultWeakKd), seg.BoundAmount, 1e-9)
}

func TestCalculateReceptorState_EqualScoresTieBreakLexical(t *testing.T) {
	catalog := mapCatalog{
		"zeta":  binder("zeta", 1.0, domain.AdministrationInjectable),
		"alpha": binder("alpha", 1.0, domain.AdministrationInjectable),
	}

	state := CalculateReceptorState([]domain.StackEntry{
		{CompoundID: "zeta", Dose: 700},
		{CompoundID: "alpha", Dose: 700},
	}, 150, catalog)

	require.Len(t, state.Segments, 2)
	assert.Equal(t, "alpha", state.Segments[0].CompoundID)
	assert.Equal(t, "zeta", state.Segments[1].CompoundID)
}

func TestCalculateReceptorState_OralDoseAlreadyDaily(t *testing.T) {
	catalog := mapCatalog{
		"oral": binder("oral", 1.0, domain.AdministrationOral),
	}

	state := CalculateReceptorState([]domain.StackEntry{
		{CompoundID: "oral", Dose: 50},
	}, 1000, catalog)

	assert.InDelta(t, 50.0, segmentByID(t, state, "oral").Demand, 1e-9)
}

func TestCalculateReceptorState_EsterWeightScalesDemand(t *testing.T) {
	compound := binder("inj", 1.0, domain.AdministrationInjectable)
	compound.Esters = map[string]domain.Ester{
		"long": {Label: "Long", HalfLifeHours: 168, Weight: 0.7},
	}
	compound.DefaultEster = "long"
	catalog := mapCatalog{"inj": compound}

	// 700/wk at 70% active weight -> 70/day.
	state := CalculateReceptorState([]domain.StackEntry{
		{CompoundID: "inj", Dose: 700},
	}, 1000, catalog)
	assert.InDelta(t, 70.0, segmentByID(t, state, "inj").Demand, 1e-9)

	// An unknown ester falls back to full weight.
	state = CalculateReceptorState([]domain.StackEntry{
		{CompoundID: "inj", Dose: 700, Ester: "mystery"},
	}, 1000, catalog)
	assert.InDelta(t, 100.0, segmentByID(t, state, "inj").Demand, 1e-9)
}

func TestCalculateReceptorState_ZeroDemand(t *testing.T) {
	catalog := mapCatalog{
		"a": binder("a", 0.5, domain.AdministrationInjectable),
	}

	state := CalculateReceptorState([]domain.StackEntry{
		{CompoundID: "a", Dose: 0},
	}, 150, catalog)

	seg := segmentByID(t, state, "a")
	assert.Equal(t, 0.0, seg.BoundAmount)
	assert.Equal(t, 0.0, seg.SpillAmount)
	assert.False(t, seg.IsDisplaced)
}

func TestCalculateReceptorState_UnknownCompoundSkipped(t *testing.T) {
	state := CalculateReceptorState([]domain.StackEntry{
		{CompoundID: "ghost", Dose: 700},
	}, 150, mapCatalog{})

	assert.Empty(t, state.Segments)
	assert.Equal(t, 0.0, state.TotalBound)
}

func TestCalculateReceptorState_DisplacementWarning(t *testing.T) {
	catalog := mapCatalog{
		"strong": binder("strong", 0.5, domain.AdministrationInjectable),
		"weak":   binder("weak", 2.0, domain.AdministrationInjectable),
	}

	state := CalculateReceptorState([]domain.StackEntry{
		{CompoundID: "strong", Dose: 700},
		{CompoundID: "weak", Dose: 700},
	}, 100, catalog)

	assert.Equal(t, "strong is displacing weak", state.Warning)
}

func TestCalculateReceptorState_NoWarningWithSpareCapacity(t *testing.T) {
	catalog := mapCatalog{
		"strong": binder("strong", 0.5, domain.AdministrationInjectable),
		"weak":   binder("weak", 2.0, domain.AdministrationInjectable),
	}

	state := CalculateReceptorState([]domain.StackEntry{
		{CompoundID: "strong", Dose: 70},
		{CompoundID: "weak", Dose: 70},
	}, 1000, catalog)

	assert.Empty(t, state.Warning)
	assert.False(t, state.IsSaturated)
}
