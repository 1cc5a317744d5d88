// Package profiles persists user profiles and their lab-mode coefficient
// overrides in profiles.db.
package profiles

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
)

// Repository handles profile database operations.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new profiles repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "profiles").Logger(),
	}
}

// Create validates and persists a new profile, assigning it a uuid.
func (r *Repository) Create(name string, profile domain.Profile) (*StoredProfile, error) {
	if name == "" {
		return nil, fmt.Errorf("profile name is required")
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	stored := &StoredProfile{
		ID:        uuid.NewString(),
		Name:      name,
		Profile:   profile,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO profiles (id, name, age, bodyweight_kg, years_training, shbg,
			aromatase, anxiety, experience, lab_mode_enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stored.ID, stored.Name, profile.Age, profile.BodyweightKg, profile.YearsTraining,
		profile.SHBG, string(profile.Aromatase), string(profile.Anxiety), string(profile.Experience),
		boolToInt(profile.LabMode.Enabled),
		stored.CreatedAt.Format(time.RFC3339), stored.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}

	if err := insertLabScales(tx, stored.ID, profile.LabMode); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit profile: %w", err)
	}

	r.log.Info().Str("profile_id", stored.ID).Str("name", name).Msg("Profile created")
	return stored, nil
}

// Update replaces an existing profile's data.
func (r *Repository) Update(id string, name string, profile domain.Profile) (*StoredProfile, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	res, err := tx.Exec(`
		UPDATE profiles SET name = ?, age = ?, bodyweight_kg = ?, years_training = ?,
			shbg = ?, aromatase = ?, anxiety = ?, experience = ?, lab_mode_enabled = ?, updated_at = ?
		WHERE id = ?`,
		name, profile.Age, profile.BodyweightKg, profile.YearsTraining,
		profile.SHBG, string(profile.Aromatase), string(profile.Anxiety), string(profile.Experience),
		boolToInt(profile.LabMode.Enabled), now.Format(time.RFC3339), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("profile %s not found", id)
	}

	if _, err := tx.Exec("DELETE FROM lab_scales WHERE profile_id = ?", id); err != nil {
		return nil, fmt.Errorf("failed to clear lab scales: %w", err)
	}
	if err := insertLabScales(tx, id, profile.LabMode); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit profile update: %w", err)
	}

	return r.Get(id)
}

// Get returns one stored profile with its lab scales hydrated.
func (r *Repository) Get(id string) (*StoredProfile, error) {
	row := r.db.QueryRow(`
		SELECT id, name, age, bodyweight_kg, years_training, shbg,
		       aromatase, anxiety, experience, lab_mode_enabled, created_at, updated_at
		FROM profiles WHERE id = ?`, id)

	stored, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("profile %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", id, err)
	}

	if err := r.hydrateLabScales(stored); err != nil {
		return nil, err
	}
	return stored, nil
}

// List returns every stored profile ordered by name.
func (r *Repository) List() ([]*StoredProfile, error) {
	rows, err := r.db.Query(`
		SELECT id, name, age, bodyweight_kg, years_training, shbg,
		       aromatase, anxiety, experience, lab_mode_enabled, created_at, updated_at
		FROM profiles ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var out []*StoredProfile
	for rows.Next() {
		stored, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		out = append(out, stored)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}

	for _, stored := range out {
		if err := r.hydrateLabScales(stored); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Delete removes a profile and its lab scales.
func (r *Repository) Delete(id string) error {
	res, err := r.db.Exec("DELETE FROM profiles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("profile %s not found", id)
	}
	// Defensive cleanup for databases created before FK enforcement.
	_, _ = r.db.Exec("DELETE FROM lab_scales WHERE profile_id = ?", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*StoredProfile, error) {
	var stored StoredProfile
	var shbg sql.NullFloat64
	var aromatase, anxiety, experience, createdAt, updatedAt string
	var labEnabled int

	err := row.Scan(&stored.ID, &stored.Name, &stored.Profile.Age, &stored.Profile.BodyweightKg,
		&stored.Profile.YearsTraining, &shbg, &aromatase, &anxiety, &experience,
		&labEnabled, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if shbg.Valid {
		v := shbg.Float64
		stored.Profile.SHBG = &v
	}
	stored.Profile.Aromatase = domain.Tendency(aromatase)
	stored.Profile.Anxiety = domain.Tendency(anxiety)
	stored.Profile.Experience = domain.ExperienceLevel(experience)
	stored.Profile.LabMode.Enabled = labEnabled != 0
	stored.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	stored.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &stored, nil
}

func (r *Repository) hydrateLabScales(stored *StoredProfile) error {
	rows, err := r.db.Query("SELECT factor, scale FROM lab_scales WHERE profile_id = ?", stored.ID)
	if err != nil {
		return fmt.Errorf("failed to query lab scales for %s: %w", stored.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var factor string
		var scale float64
		if err := rows.Scan(&factor, &scale); err != nil {
			return fmt.Errorf("failed to scan lab scale: %w", err)
		}
		if stored.Profile.LabMode.Scales == nil {
			stored.Profile.LabMode.Scales = make(map[domain.ScaleFactor]float64)
		}
		stored.Profile.LabMode.Scales[domain.ScaleFactor(factor)] = scale
	}
	return rows.Err()
}

func insertLabScales(tx *sql.Tx, profileID string, labMode domain.LabMode) error {
	for factor, scale := range labMode.Scales {
		if _, err := tx.Exec(`
			INSERT INTO lab_scales (profile_id, factor, scale) VALUES (?, ?, ?)`,
			profileID, string(factor), scale); err != nil {
			return fmt.Errorf("failed to insert lab scale %s: %w", factor, err)
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
