package interactions

import (
	"database/sql"
	"fmt"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
)

// seedInteractions is the built-in pairwise interaction matrix. Synergy
// values are fractions of the pair's combined base contribution; negative
// benefit synergy models receptor-saturation losses, negative risk
// synergy models mutually mitigating combinations.
var seedInteractions = []domain.InteractionRecord{
	{CompoundA: "testosterone", CompoundB: "nandrolone", BenefitSynergy: -0.15, RiskSynergy: 0.2, Rating: domain.RatingExcellent,
		Description: "Excellent synergy; joint-protective stack with solid mass gains"},
	{CompoundA: "testosterone", CompoundB: "trenbolone", BenefitSynergy: 0.1, RiskSynergy: 0.4, Rating: domain.RatingCaution,
		Description: "Powerful recomp stack; significant psychological and cardiovascular risk"},
	{CompoundA: "testosterone", CompoundB: "eq", BenefitSynergy: 0, RiskSynergy: 0.05, Rating: domain.RatingGood,
		Description: "Mild, well-tolerated endurance and mass stack"},
	{CompoundA: "testosterone", CompoundB: "masteron", BenefitSynergy: 0, RiskSynergy: 0, Rating: domain.RatingGood,
		Description: "Aesthetic finisher stack; hardening compound added to a base"},
	{CompoundA: "testosterone", CompoundB: "primobolan", BenefitSynergy: -0.1, RiskSynergy: -0.1, Rating: domain.RatingGood,
		Description: "Mild, quality gains stack; among the safest combinations"},
	{CompoundA: "nandrolone", CompoundB: "trenbolone", BenefitSynergy: 0.05, RiskSynergy: 0.6, Rating: domain.RatingForbidden,
		Description: "High-risk 19-nor stack; severe HPTA suppression and side effects"},
	{CompoundA: "nandrolone", CompoundB: "eq", BenefitSynergy: 0, RiskSynergy: 0.1, Rating: domain.RatingCompatible,
		Description: "Solid complementary stack; nandrolone for mass, EQ for endurance"},
	{CompoundA: "nandrolone", CompoundB: "masteron", BenefitSynergy: 0, RiskSynergy: 0, Rating: domain.RatingGood,
		Description: "Aesthetic recomp stack; nandrolone for mass, Masteron for hardness"},
	{CompoundA: "nandrolone", CompoundB: "primobolan", BenefitSynergy: -0.05, RiskSynergy: -0.05, Rating: domain.RatingCompatible,
		Description: "Quality lean mass stack; mild and well-tolerated"},
	{CompoundA: "trenbolone", CompoundB: "eq", BenefitSynergy: 0.05, RiskSynergy: 0.35, Rating: domain.RatingCaution,
		Description: "Moderate-risk recomp stack; trenbolone potency plus EQ endurance"},
	{CompoundA: "trenbolone", CompoundB: "masteron", BenefitSynergy: 0.05, RiskSynergy: 0.3, Rating: domain.RatingCaution,
		Description: "Contest prep stack; extreme aesthetics with high risk"},
	{CompoundA: "trenbolone", CompoundB: "primobolan", BenefitSynergy: 0, RiskSynergy: 0.2, Rating: domain.RatingCompatible,
		Description: "Quality recomp; primobolan mitigates some trenbolone harshness"},
	{CompoundA: "eq", CompoundB: "masteron", BenefitSynergy: 0, RiskSynergy: 0.05, Rating: domain.RatingGood,
		Description: "Aesthetic endurance stack; lean gains with definition"},
	{CompoundA: "eq", CompoundB: "primobolan", BenefitSynergy: -0.05, RiskSynergy: -0.1, Rating: domain.RatingExcellent,
		Description: "Mild, quality gains stack; among the safest combinations"},
	{CompoundA: "masteron", CompoundB: "primobolan", BenefitSynergy: -0.05, RiskSynergy: -0.05, Rating: domain.RatingGood,
		Description: "Mild aesthetic stack; contest prep or cruise-plus"},
	{CompoundA: "testosterone", CompoundB: "dianabol", BenefitSynergy: 0.15, RiskSynergy: 0.3, Rating: domain.RatingGood,
		Description: "Classic bulking kickstart; rapid mass and strength gains"},
	{CompoundA: "nandrolone", CompoundB: "dianabol", BenefitSynergy: 0.1, RiskSynergy: 0.35, Rating: domain.RatingCompatible,
		Description: "Mass-focused bulking stack; high water retention"},
	{CompoundA: "trenbolone", CompoundB: "dianabol", BenefitSynergy: 0.1, RiskSynergy: 0.5, Rating: domain.RatingCaution,
		Description: "Powerful but harsh; trenbolone recomp plus dianabol mass"},
	{CompoundA: "testosterone", CompoundB: "anadrol", BenefitSynergy: 0.2, RiskSynergy: 0.45, Rating: domain.RatingCaution,
		Description: "Extreme mass-building stack; brutal but effective"},
	{CompoundA: "trenbolone", CompoundB: "anadrol", BenefitSynergy: 0.1, RiskSynergy: 0.6, Rating: domain.RatingDangerous,
		Description: "Advanced recomp paradox; extremely harsh combination"},
	{CompoundA: "testosterone", CompoundB: "winstrol", BenefitSynergy: 0.05, RiskSynergy: 0.25, Rating: domain.RatingGood,
		Description: "Cutting and contest prep stack; hardening compound on a base"},
	{CompoundA: "masteron", CompoundB: "winstrol", BenefitSynergy: 0.05, RiskSynergy: 0.2, Rating: domain.RatingGood,
		Description: "Contest prep finisher; extreme aesthetics"},
	{CompoundA: "testosterone", CompoundB: "anavar", BenefitSynergy: 0.05, RiskSynergy: 0.1, Rating: domain.RatingExcellent,
		Description: "Mild cutting or recomp stack; well-tolerated"},
	{CompoundA: "primobolan", CompoundB: "anavar", BenefitSynergy: -0.05, RiskSynergy: -0.1, Rating: domain.RatingExcellent,
		Description: "Ultra-mild quality gains stack; safest oral combination"},
	{CompoundA: "testosterone", CompoundB: "halotestin", BenefitSynergy: 0.15, RiskSynergy: 0.55, Rating: domain.RatingDangerous,
		Description: "Strength peaking for a final week; extreme compound"},
	{CompoundA: "dianabol", CompoundB: "anadrol", BenefitSynergy: 0, RiskSynergy: 1.0, Rating: domain.RatingForbidden,
		Description: "Dual oral mass compounds; severe hepatic stress"},
	{CompoundA: "dianabol", CompoundB: "winstrol", BenefitSynergy: 0, RiskSynergy: 0.9, Rating: domain.RatingForbidden,
		Description: "Conflicting goals; dual hepatic stress"},
	{CompoundA: "anadrol", CompoundB: "winstrol", BenefitSynergy: 0, RiskSynergy: 1.0, Rating: domain.RatingForbidden,
		Description: "Extreme conflicting compounds; severe hepatic and lipid stress"},
	{CompoundA: "anavar", CompoundB: "winstrol", BenefitSynergy: 0, RiskSynergy: 0.7, Rating: domain.RatingForbidden,
		Description: "Dual cutting orals; redundant hepatic load"},
	{CompoundA: "eq", CompoundB: "anavar", BenefitSynergy: 0, RiskSynergy: 0.15, Rating: domain.RatingGood,
		Description: "Mild lean mass stack; well-tolerated"},
	{CompoundA: "nandrolone", CompoundB: "anavar", BenefitSynergy: 0.05, RiskSynergy: 0.2, Rating: domain.RatingExcellent,
		Description: "Quality mass plus mild oral; good synergy"},
	{CompoundA: "trenbolone", CompoundB: "winstrol", BenefitSynergy: 0.1, RiskSynergy: 0.45, Rating: domain.RatingDangerous,
		Description: "Contest prep finisher; extremely dry, hard aesthetics"},
}

// Seed inserts the built-in interaction matrix into an empty interactions
// table. Pair keys are canonicalized before insert so symmetric lookups
// resolve to a single row.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM interactions").Scan(&count); err != nil {
		return fmt.Errorf("failed to count interactions: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range seedInteractions {
		if !rec.Rating.Valid() {
			return fmt.Errorf("seed interaction %s/%s has invalid rating %q", rec.CompoundA, rec.CompoundB, rec.Rating)
		}
		_, err = tx.Exec(`
			INSERT INTO interactions (pair_key, compound_a, compound_b, benefit_synergy, risk_synergy, rating, description)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			domain.PairKey(rec.CompoundA, rec.CompoundB), rec.CompoundA, rec.CompoundB,
			rec.BenefitSynergy, rec.RiskSynergy, string(rec.Rating), rec.Description)
		if err != nil {
			return fmt.Errorf("failed to insert interaction %s/%s: %w", rec.CompoundA, rec.CompoundB, err)
		}
	}

	return tx.Commit()
}
