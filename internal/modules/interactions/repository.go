// Package interactions stores the pairwise compound interaction matrix
// and serves synergy lookups to the stack evaluator.
package interactions

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
)

// Repository hydrates interaction records from the catalog database into
// an in-memory map keyed by canonical pair key. Load must be called
// before any lookup.
type Repository struct {
	db      *sql.DB
	log     zerolog.Logger
	records map[string]domain.InteractionRecord
}

// NewRepository creates a new interactions repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "interactions").Logger(),
	}
}

// Load reads the full interaction matrix into memory.
func (r *Repository) Load() error {
	rows, err := r.db.Query(`
		SELECT pair_key, compound_a, compound_b, benefit_synergy, risk_synergy, rating, COALESCE(description, '')
		FROM interactions`)
	if err != nil {
		return fmt.Errorf("failed to query interactions: %w", err)
	}
	defer rows.Close()

	records := make(map[string]domain.InteractionRecord)
	for rows.Next() {
		var pairKey, rating string
		var rec domain.InteractionRecord
		if err := rows.Scan(&pairKey, &rec.CompoundA, &rec.CompoundB,
			&rec.BenefitSynergy, &rec.RiskSynergy, &rating, &rec.Description); err != nil {
			return fmt.Errorf("failed to scan interaction: %w", err)
		}
		rec.Rating = domain.InteractionRating(rating)
		if !rec.Rating.Valid() {
			return fmt.Errorf("interaction %s has unknown rating %q", pairKey, rating)
		}
		if canonical := domain.PairKey(rec.CompoundA, rec.CompoundB); canonical != pairKey {
			return fmt.Errorf("interaction %s stored under non-canonical key (expected %s)", pairKey, canonical)
		}
		records[pairKey] = rec
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate interactions: %w", err)
	}

	r.records = records
	r.log.Info().Int("pairs", len(records)).Msg("Interaction matrix loaded")
	return nil
}

// Lookup returns the interaction record for a canonical pair key.
func (r *Repository) Lookup(pairKey string) (domain.InteractionRecord, bool) {
	rec, ok := r.records[pairKey]
	return rec, ok
}

// All returns every interaction record ordered by pair key.
func (r *Repository) All() []domain.InteractionRecord {
	keys := make([]string, 0, len(r.records))
	for k := range r.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]domain.InteractionRecord, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.records[k])
	}
	return out
}

// Count returns the number of loaded pairs.
func (r *Repository) Count() int {
	return len(r.records)
}
