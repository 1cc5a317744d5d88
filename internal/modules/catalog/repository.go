// Package catalog loads the compound reference data from catalog.db and
// serves it to the engine layers as an immutable in-memory set. Curves
// are validated once at load time; evaluation never has to defend
// against malformed catalog data.
package catalog

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
)

// Repository hydrates compounds from the catalog database and answers
// lookups from an in-memory map. Load must be called before any lookup.
type Repository struct {
	db        *sql.DB
	log       zerolog.Logger
	compounds map[string]*domain.Compound
	ordered   []*domain.Compound
}

// NewRepository creates a new catalog repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "catalog").Logger(),
	}
}

// Load reads every compound, curve and ester from the database and
// validates the assembled set. A single malformed compound fails the
// whole load; curve defects are configuration errors, not runtime
// conditions.
func (r *Repository) Load() error {
	rows, err := r.db.Query(`
		SELECT id, name, administration_type, binding_affinity_nm,
		       aromatizing, neuro_sensitive, shbg_sensitive,
		       COALESCE(default_ester, ''), COALESCE(default_frequency_per_week, 0)
		FROM compounds ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to query compounds: %w", err)
	}
	defer rows.Close()

	compounds := make(map[string]*domain.Compound)
	for rows.Next() {
		var c domain.Compound
		var adminType string
		var affinity sql.NullFloat64
		var aromatizing, neuro, shbg int
		if err := rows.Scan(&c.ID, &c.Name, &adminType, &affinity,
			&aromatizing, &neuro, &shbg, &c.DefaultEster, &c.DefaultFrequencyPerWeek); err != nil {
			return fmt.Errorf("failed to scan compound: %w", err)
		}
		c.AdministrationType = domain.AdministrationType(adminType)
		if affinity.Valid {
			v := affinity.Float64
			c.BindingAffinityNM = &v
		}
		c.Aromatizing = aromatizing != 0
		c.NeuroSensitive = neuro != 0
		c.SHBGSensitive = shbg != 0
		compounds[c.ID] = &c
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate compounds: %w", err)
	}

	if err := r.loadCurves(compounds); err != nil {
		return err
	}
	if err := r.loadEsters(compounds); err != nil {
		return err
	}

	ordered := make([]*domain.Compound, 0, len(compounds))
	for _, c := range compounds {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("catalog load rejected: %w", err)
		}
		ordered = append(ordered, c)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	r.compounds = compounds
	r.ordered = ordered
	r.log.Info().Int("compounds", len(ordered)).Msg("Compound catalog loaded")
	return nil
}

func (r *Repository) loadCurves(compounds map[string]*domain.Compound) error {
	rows, err := r.db.Query(`
		SELECT compound_id, curve_type, dose, value, confidence_width
		FROM curve_points ORDER BY compound_id, curve_type, position`)
	if err != nil {
		return fmt.Errorf("failed to query curve points: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var compoundID, curveType string
		var p domain.CurvePoint
		if err := rows.Scan(&compoundID, &curveType, &p.Dose, &p.Value, &p.ConfidenceWidth); err != nil {
			return fmt.Errorf("failed to scan curve point: %w", err)
		}
		c, ok := compounds[compoundID]
		if !ok {
			return fmt.Errorf("curve point references unknown compound %s", compoundID)
		}
		switch domain.CurveType(curveType) {
		case domain.CurveBenefit:
			c.BenefitCurve = append(c.BenefitCurve, p)
		case domain.CurveRisk:
			c.RiskCurve = append(c.RiskCurve, p)
		default:
			return fmt.Errorf("compound %s has unknown curve type %q", compoundID, curveType)
		}
	}
	return rows.Err()
}

func (r *Repository) loadEsters(compounds map[string]*domain.Compound) error {
	rows, err := r.db.Query(`
		SELECT compound_id, name, label, half_life_hours, weight
		FROM esters ORDER BY compound_id, name`)
	if err != nil {
		return fmt.Errorf("failed to query esters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var compoundID, name string
		var e domain.Ester
		if err := rows.Scan(&compoundID, &name, &e.Label, &e.HalfLifeHours, &e.Weight); err != nil {
			return fmt.Errorf("failed to scan ester: %w", err)
		}
		c, ok := compounds[compoundID]
		if !ok {
			return fmt.Errorf("ester references unknown compound %s", compoundID)
		}
		if c.Esters == nil {
			c.Esters = make(map[string]domain.Ester)
		}
		c.Esters[name] = e
	}
	return rows.Err()
}

// Compound returns the catalog entry for the given id. The returned
// pointer is shared; callers must treat it as read-only.
func (r *Repository) Compound(id string) (*domain.Compound, bool) {
	c, ok := r.compounds[id]
	return c, ok
}

// All returns every compound in lexical id order.
func (r *Repository) All() []*domain.Compound {
	return r.ordered
}

// Count returns the number of loaded compounds.
func (r *Repository) Count() int {
	return len(r.compounds)
}
