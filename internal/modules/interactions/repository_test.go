package interactions

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
)

func setupInteractionsDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE interactions (
			pair_key TEXT PRIMARY KEY,
			compound_a TEXT NOT NULL,
			compound_b TEXT NOT NULL,
			benefit_synergy REAL NOT NULL DEFAULT 0,
			risk_synergy REAL NOT NULL DEFAULT 0,
			rating TEXT NOT NULL,
			description TEXT
		);
	`)
	require.NoError(t, err)

	return db
}

func setupSeededRepository(t *testing.T) *Repository {
	db := setupInteractionsDB(t)
	require.NoError(t, Seed(db))

	repo := NewRepository(db, zerolog.Nop())
	require.NoError(t, repo.Load())
	return repo
}

func TestSeedAndLoad(t *testing.T) {
	repo := setupSeededRepository(t)

	assert.Equal(t, len(seedInteractions), repo.Count())

	rec, ok := repo.Lookup(domain.PairKey("testosterone", "nandrolone"))
	require.True(t, ok)
	assert.Equal(t, domain.RatingExcellent, rec.Rating)
	assert.InDelta(t, -0.15, rec.BenefitSynergy, 1e-9)
	assert.InDelta(t, 0.2, rec.RiskSynergy, 1e-9)
}

func TestLookupIsSymmetric(t *testing.T) {
	repo := setupSeededRepository(t)

	forward, okF := repo.Lookup(domain.PairKey("trenbolone", "anadrol"))
	reverse, okR := repo.Lookup(domain.PairKey("anadrol", "trenbolone"))
	require.True(t, okF)
	require.True(t, okR)
	assert.Equal(t, forward, reverse)
	assert.Equal(t, domain.RatingDangerous, forward.Rating)
}

func TestLookupMissingPair(t *testing.T) {
	repo := setupSeededRepository(t)

	_, ok := repo.Lookup(domain.PairKey("proviron", "turinabol"))
	assert.False(t, ok)
}

func TestLoadRejectsUnknownRating(t *testing.T) {
	db := setupInteractionsDB(t)
	require.NoError(t, Seed(db))

	_, err := db.Exec(`UPDATE interactions SET rating = 'legendary' WHERE pair_key = ?`,
		domain.PairKey("testosterone", "eq"))
	require.NoError(t, err)

	repo := NewRepository(db, zerolog.Nop())
	err = repo.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "legendary")
}

func TestLoadRejectsNonCanonicalKey(t *testing.T) {
	db := setupInteractionsDB(t)
	_, err := db.Exec(`
		INSERT INTO interactions (pair_key, compound_a, compound_b, benefit_synergy, risk_synergy, rating)
		VALUES ('zeta_alpha', 'zeta', 'alpha', 0, 0, 'good')`)
	require.NoError(t, err)

	repo := NewRepository(db, zerolog.Nop())
	err = repo.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-canonical")
}

func TestAllOrderedByPairKey(t *testing.T) {
	repo := setupSeededRepository(t)

	all := repo.All()
	require.Len(t, all, len(seedInteractions))
	for i := 1; i < len(all); i++ {
		prev := domain.PairKey(all[i-1].CompoundA, all[i-1].CompoundB)
		curr := domain.PairKey(all[i].CompoundA, all[i].CompoundB)
		assert.Less(t, prev, curr)
	}
}

func TestForbiddenPairsCarryMaximalRiskSynergy(t *testing.T) {
	repo := setupSeededRepository(t)

	rec, ok := repo.Lookup(domain.PairKey("dianabol", "anadrol"))
	require.True(t, ok)
	assert.Equal(t, domain.RatingForbidden, rec.Rating)
	assert.InDelta(t, 1.0, rec.RiskSynergy, 1e-9)
	assert.Zero(t, rec.BenefitSynergy)
}
