package stacks

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
	"github.com/dhasakgbb/physioSim-sub001/internal/evaluation"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/profiles"
	"github.com/dhasakgbb/physioSim-sub001/internal/receptor"
)

// ProfileSource resolves stored profiles; the profiles repository
// satisfies it.
type ProfileSource interface {
	Get(id string) (*profiles.StoredProfile, error)
}

// Service evaluates stacks against profiles and manages snapshots.
type Service struct {
	repo     *Repository
	profiles ProfileSource
	engine   *evaluation.Engine
	log      zerolog.Logger
}

// NewService creates a new stacks service.
func NewService(repo *Repository, profileSource ProfileSource, engine *evaluation.Engine, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		profiles: profileSource,
		engine:   engine,
		log:      log.With().Str("service", "stacks").Logger(),
	}
}

// Evaluate runs the engine on ad-hoc entries with an explicit profile.
func (s *Service) Evaluate(entries []domain.StackEntry, profile domain.Profile) (*evaluation.StackResult, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	return s.engine.EvaluateStack(entries, profile)
}

// EvaluateStored evaluates a saved stack using its linked profile, or the
// neutral default when no profile is linked.
func (s *Service) EvaluateStored(stackID string) (*evaluation.StackResult, domain.Profile, error) {
	stack, err := s.repo.Get(stackID)
	if err != nil {
		return nil, domain.Profile{}, err
	}

	profile, err := s.resolveProfile(stack.ProfileID)
	if err != nil {
		return nil, domain.Profile{}, err
	}

	result, err := s.engine.EvaluateStack(stack.Entries, profile)
	if err != nil {
		return nil, domain.Profile{}, err
	}
	return result, profile, nil
}

// ReceptorState runs the competitive displacement model over ad-hoc
// entries against the default receptor capacity.
func (s *Service) ReceptorState(entries []domain.StackEntry) receptor.DisplacementState {
	return receptor.CalculateReceptorState(entries, receptor.DefaultTotalCapacity, s.engine.Catalog())
}

// ReceptorStateStored runs the displacement model over a saved stack.
func (s *Service) ReceptorStateStored(stackID string) (receptor.DisplacementState, error) {
	stack, err := s.repo.Get(stackID)
	if err != nil {
		return receptor.DisplacementState{}, err
	}
	return s.ReceptorState(stack.Entries), nil
}

// TakeSnapshot evaluates a saved stack and freezes the result. The
// snapshot carries the canonical input signature so later comparisons can
// tell "same inputs, new engine" apart from "inputs changed".
func (s *Service) TakeSnapshot(stackID string) (*Snapshot, error) {
	stack, err := s.repo.Get(stackID)
	if err != nil {
		return nil, err
	}

	profile, err := s.resolveProfile(stack.ProfileID)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.EvaluateStack(stack.Entries, profile)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("stack %s has no evaluable entries", stackID)
	}

	return s.repo.SaveSnapshot(stackID, evaluation.Signature(stack.Entries, profile), result)
}

// CompareSnapshots diffs two snapshots of the same stack.
func (s *Service) CompareSnapshots(baseID, otherID string) (*SnapshotDiff, error) {
	base, err := s.repo.GetSnapshot(baseID)
	if err != nil {
		return nil, err
	}
	other, err := s.repo.GetSnapshot(otherID)
	if err != nil {
		return nil, err
	}
	if base.StackID != other.StackID {
		return nil, fmt.Errorf("snapshots belong to different stacks")
	}

	bt, ot := base.Result.Totals, other.Result.Totals
	return &SnapshotDiff{
		BaseID:             base.ID,
		OtherID:            other.ID,
		SameInputs:         base.Signature == other.Signature,
		BenefitDelta:       ot.AdjustedBenefit - bt.AdjustedBenefit,
		RiskDelta:          ot.AdjustedRisk - bt.AdjustedRisk,
		NetScoreDelta:      ot.NetScore - bt.NetScore,
		BenefitRiskDelta:   ot.BenefitRiskRatio - bt.BenefitRiskRatio,
		WarningCountDelta:  len(other.Result.Warnings) - len(base.Result.Warnings),
		CompoundCountDelta: len(other.Result.ByCompound) - len(base.Result.ByCompound),
	}, nil
}

func (s *Service) resolveProfile(profileID string) (domain.Profile, error) {
	if profileID == "" {
		return domain.DefaultProfile(), nil
	}
	stored, err := s.profiles.Get(profileID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("failed to resolve profile %s: %w", profileID, err)
	}
	return stored.Profile, nil
}
