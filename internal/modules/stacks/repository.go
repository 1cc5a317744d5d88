// Package stacks persists saved stacks and evaluation snapshots, and
// exposes the evaluation service that turns a stack into scored results.
package stacks

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
	"github.com/dhasakgbb/physioSim-sub001/internal/evaluation"
)

// Repository handles stack and snapshot database operations.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new stacks repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "stacks").Logger(),
	}
}

// Create persists a new stack. Duplicate compounds are rejected here, at
// the boundary, so the evaluation engine never sees them.
func (r *Repository) Create(name, profileID string, entries []domain.StackEntry) (*Stack, error) {
	if name == "" {
		return nil, fmt.Errorf("stack name is required")
	}
	if err := validateEntries(entries); err != nil {
		return nil, err
	}

	stack := &Stack{
		ID:        uuid.NewString(),
		Name:      name,
		ProfileID: profileID,
		Entries:   entries,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO stacks (id, name, profile_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		stack.ID, stack.Name, nullableString(stack.ProfileID),
		stack.CreatedAt.Format(time.RFC3339), stack.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to insert stack: %w", err)
	}

	if err := insertEntries(tx, stack.ID, entries); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit stack: %w", err)
	}

	r.log.Info().Str("stack_id", stack.ID).Str("name", name).Int("entries", len(entries)).Msg("Stack created")
	return stack, nil
}

// Update replaces a stack's name, profile and entries.
func (r *Repository) Update(id, name, profileID string, entries []domain.StackEntry) (*Stack, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE stacks SET name = ?, profile_id = ?, updated_at = ? WHERE id = ?`,
		name, nullableString(profileID), time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update stack: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("stack %s not found", id)
	}

	if _, err := tx.Exec("DELETE FROM stack_entries WHERE stack_id = ?", id); err != nil {
		return nil, fmt.Errorf("failed to clear stack entries: %w", err)
	}
	if err := insertEntries(tx, id, entries); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit stack update: %w", err)
	}

	return r.Get(id)
}

// Get returns one stack with its entries.
func (r *Repository) Get(id string) (*Stack, error) {
	var stack Stack
	var profileID sql.NullString
	var createdAt, updatedAt string

	err := r.db.QueryRow(`
		SELECT id, name, profile_id, created_at, updated_at FROM stacks WHERE id = ?`, id).
		Scan(&stack.ID, &stack.Name, &profileID, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("stack %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stack %s: %w", id, err)
	}

	stack.ProfileID = profileID.String
	stack.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	stack.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	entries, err := r.loadEntries(id)
	if err != nil {
		return nil, err
	}
	stack.Entries = entries
	return &stack, nil
}

// List returns every stack with entries hydrated, ordered by name.
func (r *Repository) List() ([]*Stack, error) {
	rows, err := r.db.Query(`SELECT id FROM stacks ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list stacks: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan stack id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stacks: %w", err)
	}

	out := make([]*Stack, 0, len(ids))
	for _, id := range ids {
		stack, err := r.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, stack)
	}
	return out, nil
}

// Delete removes a stack, its entries and its snapshots.
func (r *Repository) Delete(id string) error {
	res, err := r.db.Exec("DELETE FROM stacks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete stack %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("stack %s not found", id)
	}
	_, _ = r.db.Exec("DELETE FROM stack_entries WHERE stack_id = ?", id)
	_, _ = r.db.Exec("DELETE FROM snapshots WHERE stack_id = ?", id)
	return nil
}

// SaveSnapshot freezes an evaluation result for later comparison.
func (r *Repository) SaveSnapshot(stackID, signature string, result *evaluation.StackResult) (*Snapshot, error) {
	blob, err := msgpack.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	snap := &Snapshot{
		ID:        uuid.NewString(),
		StackID:   stackID,
		Signature: signature,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}

	_, err = r.db.Exec(`
		INSERT INTO snapshots (id, stack_id, signature, result_blob, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		snap.ID, snap.StackID, snap.Signature, blob, snap.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	r.log.Debug().Str("snapshot_id", snap.ID).Str("stack_id", stackID).Msg("Snapshot saved")
	return snap, nil
}

// GetSnapshot returns one snapshot with its result decoded.
func (r *Repository) GetSnapshot(id string) (*Snapshot, error) {
	var snap Snapshot
	var blob []byte
	var createdAt string

	err := r.db.QueryRow(`
		SELECT id, stack_id, signature, result_blob, created_at FROM snapshots WHERE id = ?`, id).
		Scan(&snap.ID, &snap.StackID, &snap.Signature, &blob, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %s: %w", id, err)
	}

	var result evaluation.StackResult
	if err := msgpack.Unmarshal(blob, &result); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", id, err)
	}
	snap.Result = &result
	snap.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &snap, nil
}

// ListSnapshots returns a stack's snapshots, newest first, without
// decoding result blobs.
func (r *Repository) ListSnapshots(stackID string) ([]*Snapshot, error) {
	rows, err := r.db.Query(`
		SELECT id, stack_id, signature, created_at FROM snapshots
		WHERE stack_id = ? ORDER BY created_at DESC, id`, stackID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var out []*Snapshot
	for rows.Next() {
		var snap Snapshot
		var createdAt string
		if err := rows.Scan(&snap.ID, &snap.StackID, &snap.Signature, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snap.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, &snap)
	}
	return out, rows.Err()
}

// PruneSnapshots deletes all but the newest keepPerStack snapshots of each
// stack and returns the number of rows removed.
func (r *Repository) PruneSnapshots(keepPerStack int) (int64, error) {
	if keepPerStack < 0 {
		return 0, fmt.Errorf("keep count must be non-negative, got %d", keepPerStack)
	}

	res, err := r.db.Exec(`
		DELETE FROM snapshots
		WHERE id NOT IN (
			SELECT s2.id FROM snapshots s2
			WHERE s2.stack_id = snapshots.stack_id
			ORDER BY s2.created_at DESC, s2.id
			LIMIT ?
		)`, keepPerStack)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}

	pruned, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned snapshots: %w", err)
	}
	if pruned > 0 {
		r.log.Info().Int64("pruned", pruned).Int("keep_per_stack", keepPerStack).Msg("Old snapshots pruned")
	}
	return pruned, nil
}

func (r *Repository) loadEntries(stackID string) ([]domain.StackEntry, error) {
	rows, err := r.db.Query(`
		SELECT compound_id, dose, COALESCE(frequency_per_week, 0), COALESCE(ester, '')
		FROM stack_entries WHERE stack_id = ? ORDER BY compound_id`, stackID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stack entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.StackEntry
	for rows.Next() {
		var e domain.StackEntry
		if err := rows.Scan(&e.CompoundID, &e.Dose, &e.FrequencyPerWeek, &e.Ester); err != nil {
			return nil, fmt.Errorf("failed to scan stack entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func insertEntries(tx *sql.Tx, stackID string, entries []domain.StackEntry) error {
	for _, e := range entries {
		_, err := tx.Exec(`
			INSERT INTO stack_entries (stack_id, compound_id, dose, frequency_per_week, ester)
			VALUES (?, ?, ?, ?, ?)`,
			stackID, e.CompoundID, e.Dose, e.FrequencyPerWeek, nullableString(e.Ester))
		if err != nil {
			return fmt.Errorf("failed to insert stack entry %s: %w", e.CompoundID, err)
		}
	}
	return nil
}

func validateEntries(entries []domain.StackEntry) error {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.CompoundID == "" {
			return fmt.Errorf("stack entry missing compound id")
		}
		if _, dup := seen[e.CompoundID]; dup {
			return fmt.Errorf("duplicate compound %s in stack", e.CompoundID)
		}
		seen[e.CompoundID] = struct{}{}
		if !e.ValidDose() {
			return fmt.Errorf("invalid dose for compound %s", e.CompoundID)
		}
	}
	return nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
