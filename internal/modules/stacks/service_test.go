package stacks

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
	"github.com/dhasakgbb/physioSim-sub001/internal/evaluation"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/profiles"
	"github.com/dhasakgbb/physioSim-sub001/internal/receptor"
)

type stubCatalog map[string]*domain.Compound

func (c stubCatalog) Compound(id string) (*domain.Compound, bool) {
	compound, ok := c[id]
	return compound, ok
}

type stubMatrix map[string]domain.InteractionRecord

func (m stubMatrix) Lookup(pairKey string) (domain.InteractionRecord, bool) {
	rec, ok := m[pairKey]
	return rec, ok
}

type stubProfiles map[string]*profiles.StoredProfile

func (p stubProfiles) Get(id string) (*profiles.StoredProfile, error) {
	stored, ok := p[id]
	if !ok {
		return nil, fmt.Errorf("profile %s not found", id)
	}
	return stored, nil
}

func linearCompound(id string) *domain.Compound {
	return &domain.Compound{
		ID:                 id,
		Name:               id,
		AdministrationType: domain.AdministrationInjectable,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0},
			{Dose: 600, Value: 6},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0},
			{Dose: 600, Value: 3},
		},
	}
}

func setupStacksDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE stacks (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			profile_id TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE TABLE stack_entries (
			stack_id TEXT NOT NULL,
			compound_id TEXT NOT NULL,
			dose REAL NOT NULL,
			frequency_per_week REAL,
			ester TEXT,
			PRIMARY KEY (stack_id, compound_id)
		);
		CREATE TABLE snapshots (
			id TEXT PRIMARY KEY,
			stack_id TEXT NOT NULL,
			signature TEXT NOT NULL,
			result_blob BLOB NOT NULL,
			created_at TEXT NOT NULL
		);
	`)
	require.NoError(t, err)

	return db
}

func newTestService(t *testing.T, profileSource ProfileSource) (*Service, *Repository) {
	catalog := stubCatalog{
		"alpha": linearCompound("alpha"),
		"beta":  linearCompound("beta"),
	}
	matrix := stubMatrix{
		domain.PairKey("alpha", "beta"): {
			CompoundA:      "alpha",
			CompoundB:      "beta",
			BenefitSynergy: 0.1,
			RiskSynergy:    0.2,
			Rating:         domain.RatingGood,
		},
	}
	engine := evaluation.NewEngine(catalog, matrix, 16, zerolog.Nop())

	repo := NewRepository(setupStacksDB(t), zerolog.Nop())
	if profileSource == nil {
		profileSource = stubProfiles{}
	}
	return NewService(repo, profileSource, engine, zerolog.Nop()), repo
}

func TestEvaluateAdHoc(t *testing.T) {
	service, _ := newTestService(t, nil)

	result, err := service.Evaluate([]domain.StackEntry{
		{CompoundID: "alpha", Dose: 300},
	}, domain.DefaultProfile())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.InDelta(t, 3.0, result.Totals.TotalBenefit, 1e-9)
}

func TestEvaluateRejectsInvalidProfile(t *testing.T) {
	service, _ := newTestService(t, nil)

	profile := domain.DefaultProfile()
	profile.Age = -1

	_, err := service.Evaluate([]domain.StackEntry{{CompoundID: "alpha", Dose: 300}}, profile)
	require.Error(t, err)
}

func TestEvaluateStoredUsesLinkedProfile(t *testing.T) {
	veteran := domain.DefaultProfile()
	veteran.Experience = domain.ExperienceVeteran

	source := stubProfiles{
		"p1": {ID: "p1", Name: "Vet", Profile: veteran},
	}
	service, repo := newTestService(t, source)

	stack, err := repo.Create("Cruise", "p1", []domain.StackEntry{{CompoundID: "alpha", Dose: 300}})
	require.NoError(t, err)

	result, profile, err := service.EvaluateStored(stack.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ExperienceVeteran, profile.Experience)
	// Veteran experience reduces benefit relative to the neutral default.
	assert.Less(t, result.Totals.TotalBenefit, 3.0)
}

func TestEvaluateStoredDefaultsProfile(t *testing.T) {
	service, repo := newTestService(t, nil)

	stack, err := repo.Create("Anonymous", "", []domain.StackEntry{{CompoundID: "alpha", Dose: 300}})
	require.NoError(t, err)

	result, profile, err := service.EvaluateStored(stack.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProfile(), profile)
	assert.InDelta(t, 3.0, result.Totals.TotalBenefit, 1e-9)
}

func TestSnapshotRoundTrip(t *testing.T) {
	service, repo := newTestService(t, nil)

	stack, err := repo.Create("Pair", "", []domain.StackEntry{
		{CompoundID: "alpha", Dose: 300},
		{CompoundID: "beta", Dose: 300},
	})
	require.NoError(t, err)

	snap, err := service.TakeSnapshot(stack.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, snap.Signature)

	// Decoded snapshot carries the same totals the live evaluation produced.
	got, err := repo.GetSnapshot(snap.ID)
	require.NoError(t, err)
	live, _, err := service.EvaluateStored(stack.ID)
	require.NoError(t, err)
	assert.InDelta(t, live.Totals.NetScore, got.Result.Totals.NetScore, 1e-9)
	assert.InDelta(t, live.Totals.AdjustedBenefit, got.Result.Totals.AdjustedBenefit, 1e-9)
	assert.Len(t, got.Result.Pairs, 1)
}

func TestCompareSnapshotsSameInputs(t *testing.T) {
	service, repo := newTestService(t, nil)

	stack, err := repo.Create("Stable", "", []domain.StackEntry{{CompoundID: "alpha", Dose: 300}})
	require.NoError(t, err)

	first, err := service.TakeSnapshot(stack.ID)
	require.NoError(t, err)
	second, err := service.TakeSnapshot(stack.ID)
	require.NoError(t, err)

	diff, err := service.CompareSnapshots(first.ID, second.ID)
	require.NoError(t, err)
	assert.True(t, diff.SameInputs)
	assert.Zero(t, diff.NetScoreDelta)
	assert.Zero(t, diff.WarningCountDelta)
}

func TestCompareSnapshotsAfterDoseChange(t *testing.T) {
	service, repo := newTestService(t, nil)

	stack, err := repo.Create("Ramp", "", []domain.StackEntry{{CompoundID: "alpha", Dose: 300}})
	require.NoError(t, err)

	first, err := service.TakeSnapshot(stack.ID)
	require.NoError(t, err)

	_, err = repo.Update(stack.ID, "Ramp", "", []domain.StackEntry{{CompoundID: "alpha", Dose: 600}})
	require.NoError(t, err)

	second, err := service.TakeSnapshot(stack.ID)
	require.NoError(t, err)

	diff, err := service.CompareSnapshots(first.ID, second.ID)
	require.NoError(t, err)
	assert.False(t, diff.SameInputs)
	assert.InDelta(t, 3.0, diff.BenefitDelta, 1e-9)
	assert.InDelta(t, 1.5, diff.RiskDelta, 1e-9)
}

func TestCompareSnapshotsDifferentStacks(t *testing.T) {
	service, repo := newTestService(t, nil)

	s1, err := repo.Create("One", "", []domain.StackEntry{{CompoundID: "alpha", Dose: 300}})
	require.NoError(t, err)
	s2, err := repo.Create("Two", "", []domain.StackEntry{{CompoundID: "beta", Dose: 300}})
	require.NoError(t, err)

	snap1, err := service.TakeSnapshot(s1.ID)
	require.NoError(t, err)
	snap2, err := service.TakeSnapshot(s2.ID)
	require.NoError(t, err)

	_, err = service.CompareSnapshots(snap1.ID, snap2.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "different stacks")
}

func TestReceptorStateUsesEngineCatalog(t *testing.T) {
	service, _ := newTestService(t, nil)

	// 700/wk -> 100/day; no affinity data, so the weak default Kd caps
	// binding at 10% of demand.
	state := service.ReceptorState([]domain.StackEntry{{CompoundID: "alpha", Dose: 700}})
	require.Len(t, state.Segments, 1)
	assert.InDelta(t, 100.0, state.Segments[0].Demand, 1e-9)
	assert.InDelta(t, 10.0, state.TotalBound, 1e-9)
	assert.False(t, state.IsSaturated)
	assert.InDelta(t, receptor.DefaultTotalCapacity, state.TotalCapacity, 1e-9)
}

func TestReceptorStateStored(t *testing.T) {
	service, repo := newTestService(t, nil)

	stack, err := repo.Create("Bind", "", []domain.StackEntry{{CompoundID: "alpha", Dose: 700}})
	require.NoError(t, err)

	state, err := service.ReceptorStateStored(stack.ID)
	require.NoError(t, err)
	require.Len(t, state.Segments, 1)
	assert.Equal(t, "alpha", state.Segments[0].CompoundID)

	_, err = service.ReceptorStateStored("missing")
	assert.Error(t, err)
}
