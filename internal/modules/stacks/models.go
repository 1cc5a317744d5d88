package stacks

import (
	"time"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
	"github.com/dhasakgbb/physioSim-sub001/internal/evaluation"
)

// Stack is a named, persisted set of stack entries.
type Stack struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	ProfileID string              `json:"profile_id,omitempty"`
	Entries   []domain.StackEntry `json:"entries"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Snapshot is a frozen evaluation result kept for later comparison.
// Result is serialized with msgpack in storage.
type Snapshot struct {
	ID        string                  `json:"id"`
	StackID   string                  `json:"stack_id"`
	Signature string                  `json:"signature"`
	Result    *evaluation.StackResult `json:"result"`
	CreatedAt time.Time               `json:"created_at"`
}

// SnapshotDiff compares two snapshots of the same stack.
type SnapshotDiff struct {
	BaseID             string  `json:"base_id"`
	OtherID            string  `json:"other_id"`
	SameInputs         bool    `json:"same_inputs"`
	BenefitDelta       float64 `json:"benefit_delta"`
	RiskDelta          float64 `json:"risk_delta"`
	NetScoreDelta      float64 `json:"net_score_delta"`
	BenefitRiskDelta   float64 `json:"benefit_risk_delta"`
	WarningCountDelta  int     `json:"warning_count_delta"`
	CompoundCountDelta int     `json:"compound_count_delta"`
}
