package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
)

// nm returns a pointer to a binding affinity value. Compounds without an
// entry in the AR affinity dataset carry nil and fall back to the weak
// binder default in the receptor model.
func nm(v float64) *float64 { return &v }

// seedCompounds is the built-in compound reference set. Curve samples are
// population medians with confidence half-widths from the underlying
// evidence tiers; doses are mg/week for injectables and mg/day for orals
// and ancillaries.
var seedCompounds = []domain.Compound{
	{
		ID:                 "testosterone",
		Name:               "Testosterone",
		AdministrationType: domain.AdministrationInjectable,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 100, Value: 0.83, ConfidenceWidth: 0.15},
			{Dose: 300, Value: 2.5, ConfidenceWidth: 0.15},
			{Dose: 600, Value: 5.0, ConfidenceWidth: 0.15},
			{Dose: 800, Value: 6.1, ConfidenceWidth: 0.5},
			{Dose: 1000, Value: 6.9, ConfidenceWidth: 0.5},
			{Dose: 1500, Value: 8.2, ConfidenceWidth: 0.5},
			{Dose: 3000, Value: 10.0, ConfidenceWidth: 0.5},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 100, Value: 0.2, ConfidenceWidth: 0.2},
			{Dose: 300, Value: 0.9, ConfidenceWidth: 0.2},
			{Dose: 600, Value: 2.1, ConfidenceWidth: 0.25},
			{Dose: 1000, Value: 4.0, ConfidenceWidth: 0.5},
			{Dose: 1500, Value: 6.0, ConfidenceWidth: 0.6},
			{Dose: 2500, Value: 11.5, ConfidenceWidth: 0.7},
		},
		BindingAffinityNM: nm(0.90),
		Aromatizing:       true,
		SHBGSensitive:     true,
		Esters: map[string]domain.Ester{
			"propionate": {Label: "Propionate", HalfLifeHours: 19, Weight: 0.83},
			"enanthate":  {Label: "Enanthate", HalfLifeHours: 108, Weight: 0.72},
			"cypionate":  {Label: "Cypionate", HalfLifeHours: 120, Weight: 0.70},
			"sustanon":   {Label: "Sustanon 250", HalfLifeHours: 216, Weight: 0.74},
		},
		DefaultEster:            "enanthate",
		DefaultFrequencyPerWeek: 2,
	},
	{
		ID:                 "nandrolone",
		Name:               "Nandrolone",
		AdministrationType: domain.AdministrationInjectable,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 100, Value: 1.5, ConfidenceWidth: 0.3},
			{Dose: 200, Value: 2.5, ConfidenceWidth: 0.3},
			{Dose: 300, Value: 3.0, ConfidenceWidth: 0.4},
			{Dose: 400, Value: 3.15, ConfidenceWidth: 0.5},
			{Dose: 600, Value: 3.45, ConfidenceWidth: 0.5},
			{Dose: 800, Value: 3.65, ConfidenceWidth: 0.6},
			{Dose: 1000, Value: 3.8, ConfidenceWidth: 0.6},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 100, Value: 0.3, ConfidenceWidth: 0.25},
			{Dose: 200, Value: 0.8, ConfidenceWidth: 0.3},
			{Dose: 300, Value: 1.5, ConfidenceWidth: 0.4},
			{Dose: 400, Value: 2.2, ConfidenceWidth: 0.5},
			{Dose: 600, Value: 3.0, ConfidenceWidth: 0.5},
			{Dose: 800, Value: 4.5, ConfidenceWidth: 0.6},
			{Dose: 1000, Value: 6.5, ConfidenceWidth: 0.7},
		},
		BindingAffinityNM: nm(0.58),
		Aromatizing:       true,
		Esters: map[string]domain.Ester{
			"phenylpropionate": {Label: "Phenylpropionate (NPP)", HalfLifeHours: 60, Weight: 0.67},
			"decanoate":        {Label: "Decanoate (Deca)", HalfLifeHours: 360, Weight: 0.64},
		},
		DefaultEster:            "decanoate",
		DefaultFrequencyPerWeek: 2,
	},
	{
		ID:                 "trenbolone",
		Name:               "Trenbolone",
		AdministrationType: domain.AdministrationInjectable,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 200, Value: 3.67, ConfidenceWidth: 0.6},
			{Dose: 400, Value: 4.87, ConfidenceWidth: 0.63},
			{Dose: 600, Value: 5.35, ConfidenceWidth: 0.63},
			{Dose: 1000, Value: 5.85, ConfidenceWidth: 0.63},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 200, Value: 2.8, ConfidenceWidth: 0.6},
			{Dose: 400, Value: 5.2, ConfidenceWidth: 0.8},
			{Dose: 600, Value: 7.0, ConfidenceWidth: 0.8},
			{Dose: 1000, Value: 12.0, ConfidenceWidth: 0.9},
		},
		BindingAffinityNM: nm(0.47),
		NeuroSensitive:    true,
		Esters: map[string]domain.Ester{
			"acetate":   {Label: "Acetate", HalfLifeHours: 24, Weight: 0.87},
			"enanthate": {Label: "Enanthate", HalfLifeHours: 108, Weight: 0.70},
			"hexahydro": {Label: "Hexahydrobenzylcarbonate", HalfLifeHours: 144, Weight: 0.68},
		},
		DefaultEster:            "acetate",
		DefaultFrequencyPerWeek: 3.5,
	},
	{
		ID:                 "eq",
		Name:               "EQ (Boldenone)",
		AdministrationType: domain.AdministrationInjectable,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 400, Value: 1.0, ConfidenceWidth: 0.4},
			{Dose: 800, Value: 2.0, ConfidenceWidth: 0.5},
			{Dose: 1500, Value: 3.2, ConfidenceWidth: 0.6},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 600, Value: 1.0, ConfidenceWidth: 0.6},
			{Dose: 1200, Value: 1.6, ConfidenceWidth: 0.6},
		},
		BindingAffinityNM:       nm(1.44),
		Aromatizing:             true,
		DefaultFrequencyPerWeek: 2,
	},
	{
		ID:                 "masteron",
		Name:               "Masteron (Drostanolone)",
		AdministrationType: domain.AdministrationInjectable,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 400, Value: 1.2, ConfidenceWidth: 0.5},
			{Dose: 800, Value: 1.55, ConfidenceWidth: 0.6},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 600, Value: 1.1, ConfidenceWidth: 0.8},
			{Dose: 1000, Value: 2.0, ConfidenceWidth: 0.8},
		},
		Esters: map[string]domain.Ester{
			"propionate": {Label: "Propionate", HalfLifeHours: 48, Weight: 0.80},
			"enanthate":  {Label: "Enanthate", HalfLifeHours: 108, Weight: 0.70},
		},
		DefaultEster:            "propionate",
		DefaultFrequencyPerWeek: 3.5,
	},
	{
		ID:                 "primobolan",
		Name:               "Primobolan (Methenolone)",
		AdministrationType: domain.AdministrationInjectable,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 400, Value: 1.3, ConfidenceWidth: 0.5},
			{Dose: 800, Value: 1.8, ConfidenceWidth: 0.6},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 400, Value: 0.6, ConfidenceWidth: 0.5},
			{Dose: 800, Value: 1.2, ConfidenceWidth: 0.8},
		},
		Esters: map[string]domain.Ester{
			"enanthate": {Label: "Enanthate", HalfLifeHours: 240, Weight: 0.70},
			"acetate":   {Label: "Acetate (Oral)", HalfLifeHours: 6, Weight: 0.90},
		},
		DefaultEster:            "enanthate",
		DefaultFrequencyPerWeek: 2,
	},
	{
		ID:                 "ment",
		Name:               "Ment (Trestolone)",
		AdministrationType: domain.AdministrationInjectable,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 50, Value: 3.0, ConfidenceWidth: 0},
			{Dose: 100, Value: 4.5, ConfidenceWidth: 0},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 50, Value: 2.0, ConfidenceWidth: 0},
			{Dose: 100, Value: 4.0, ConfidenceWidth: 0},
		},
		BindingAffinityNM: nm(0.80),
		Aromatizing:       true,
		Esters: map[string]domain.Ester{
			"acetate":   {Label: "Acetate", HalfLifeHours: 24, Weight: 0.87},
			"enanthate": {Label: "Enanthate", HalfLifeHours: 108, Weight: 0.70},
		},
		DefaultEster:            "acetate",
		DefaultFrequencyPerWeek: 3.5,
	},
	{
		ID:                 "dhb",
		Name:               "DHB (1-Testosterone)",
		AdministrationType: domain.AdministrationInjectable,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 400, Value: 3.5, ConfidenceWidth: 0},
			{Dose: 800, Value: 4.5, ConfidenceWidth: 0},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 400, Value: 2.0, ConfidenceWidth: 0},
			{Dose: 800, Value: 4.5, ConfidenceWidth: 0},
		},
		Esters: map[string]domain.Ester{
			"cypionate":  {Label: "Cypionate", HalfLifeHours: 120, Weight: 0.70},
			"propionate": {Label: "Propionate", HalfLifeHours: 24, Weight: 0.83},
		},
		DefaultEster:            "cypionate",
		DefaultFrequencyPerWeek: 2,
	},
	{
		ID:                 "dianabol",
		Name:               "Dianabol (Methandrostenolone)",
		AdministrationType: domain.AdministrationOral,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 20, Value: 2.3, ConfidenceWidth: 0.6},
			{Dose: 50, Value: 3.4, ConfidenceWidth: 0.8},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 20, Value: 0.8, ConfidenceWidth: 0.6},
			{Dose: 50, Value: 2.8, ConfidenceWidth: 0.9},
		},
		Aromatizing: true,
		Esters: map[string]domain.Ester{
			"oral": {Label: "Oral Tablet", HalfLifeHours: 4, Weight: 1.0},
		},
		DefaultEster:            "oral",
		DefaultFrequencyPerWeek: 7,
	},
	{
		ID:                 "anadrol",
		Name:               "Anadrol (Oxymetholone)",
		AdministrationType: domain.AdministrationOral,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 50, Value: 3.2, ConfidenceWidth: 0.6},
			{Dose: 100, Value: 4.3, ConfidenceWidth: 0.8},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 50, Value: 1.8, ConfidenceWidth: 0.7},
			{Dose: 100, Value: 3.5, ConfidenceWidth: 0.9},
		},
		Aromatizing: true,
		Esters: map[string]domain.Ester{
			"oral": {Label: "Oral Tablet", HalfLifeHours: 9, Weight: 1.0},
		},
		DefaultEster:            "oral",
		DefaultFrequencyPerWeek: 7,
	},
	{
		ID:                 "winstrol",
		Name:               "Winstrol (Stanozolol)",
		AdministrationType: domain.AdministrationOral,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 50, Value: 1.5, ConfidenceWidth: 0.6},
			{Dose: 100, Value: 1.9, ConfidenceWidth: 0.7},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 50, Value: 1.4, ConfidenceWidth: 0.7},
			{Dose: 100, Value: 3.0, ConfidenceWidth: 0.9},
		},
		Esters: map[string]domain.Ester{
			"oral": {Label: "Oral Tablet", HalfLifeHours: 9, Weight: 1.0},
		},
		DefaultEster:            "oral",
		DefaultFrequencyPerWeek: 7,
	},
	{
		ID:                 "anavar",
		Name:               "Anavar (Oxandrolone)",
		AdministrationType: domain.AdministrationOral,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 50, Value: 1.2, ConfidenceWidth: 0.5},
			{Dose: 100, Value: 1.8, ConfidenceWidth: 0.6},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 50, Value: 0.7, ConfidenceWidth: 0.6},
			{Dose: 100, Value: 1.8, ConfidenceWidth: 0.7},
		},
		// Direct human AR measurement; anomalously weak binder relative
		// to its clinical effect profile.
		BindingAffinityNM: nm(62.0),
		Esters: map[string]domain.Ester{
			"oral": {Label: "Oral Tablet", HalfLifeHours: 9, Weight: 1.0},
		},
		DefaultEster:            "oral",
		DefaultFrequencyPerWeek: 7,
	},
	{
		ID:                 "halotestin",
		Name:               "Halotestin (Fluoxymesterone)",
		AdministrationType: domain.AdministrationOral,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 20, Value: 3.0, ConfidenceWidth: 0.8},
			{Dose: 40, Value: 3.7, ConfidenceWidth: 0.9},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 20, Value: 3.5, ConfidenceWidth: 0.9},
			{Dose: 40, Value: 5.2, ConfidenceWidth: 1.0},
		},
		NeuroSensitive: true,
		Esters: map[string]domain.Ester{
			"oral": {Label: "Oral Tablet", HalfLifeHours: 9.2, Weight: 1.0},
		},
		DefaultEster:            "oral",
		DefaultFrequencyPerWeek: 7,
	},
	{
		ID:                 "proviron",
		Name:               "Proviron (Mesterolone)",
		AdministrationType: domain.AdministrationOral,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 50, Value: 0.8, ConfidenceWidth: 0},
			{Dose: 100, Value: 0.9, ConfidenceWidth: 0},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 50, Value: 0.2, ConfidenceWidth: 0},
			{Dose: 100, Value: 0.4, ConfidenceWidth: 0},
		},
		Esters: map[string]domain.Ester{
			"oral": {Label: "Oral Tablet", HalfLifeHours: 12, Weight: 1.0},
		},
		DefaultEster:            "oral",
		DefaultFrequencyPerWeek: 7,
	},
	{
		ID:                 "turinabol",
		Name:               "Turinabol (CDMT)",
		AdministrationType: domain.AdministrationOral,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 40, Value: 2.0, ConfidenceWidth: 0},
			{Dose: 80, Value: 2.8, ConfidenceWidth: 0},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 40, Value: 1.2, ConfidenceWidth: 0},
			{Dose: 80, Value: 2.5, ConfidenceWidth: 0},
		},
		Esters: map[string]domain.Ester{
			"oral": {Label: "Oral Tablet", HalfLifeHours: 16, Weight: 1.0},
		},
		DefaultEster:            "oral",
		DefaultFrequencyPerWeek: 7,
	},
	{
		ID:                 "superdrol",
		Name:               "Superdrol (Methasterone)",
		AdministrationType: domain.AdministrationOral,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 20, Value: 4.5, ConfidenceWidth: 0},
			{Dose: 40, Value: 4.9, ConfidenceWidth: 0},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 20, Value: 4.5, ConfidenceWidth: 0},
			{Dose: 40, Value: 8.0, ConfidenceWidth: 0},
		},
		Esters: map[string]domain.Ester{
			"oral": {Label: "Oral Tablet", HalfLifeHours: 8, Weight: 1.0},
		},
		DefaultEster:            "oral",
		DefaultFrequencyPerWeek: 7,
	},
	{
		ID:                 "arimidex",
		Name:               "Arimidex (Anastrozole)",
		AdministrationType: domain.AdministrationAncillary,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 1, Value: 1.0, ConfidenceWidth: 0},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 1, Value: 0.5, ConfidenceWidth: 0},
		},
		Esters: map[string]domain.Ester{
			"oral": {Label: "Tablet", HalfLifeHours: 48, Weight: 1.0},
		},
		DefaultEster:            "oral",
		DefaultFrequencyPerWeek: 7,
	},
	{
		ID:                 "finasteride",
		Name:               "Finasteride (Propecia)",
		AdministrationType: domain.AdministrationAncillary,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 1, Value: 1.0, ConfidenceWidth: 0},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 1, Value: 0.5, ConfidenceWidth: 0},
		},
		Esters: map[string]domain.Ester{
			"oral": {Label: "Tablet", HalfLifeHours: 6, Weight: 1.0},
		},
		DefaultEster:            "oral",
		DefaultFrequencyPerWeek: 7,
	},
	{
		ID:                 "nolvadex",
		Name:               "Nolvadex (Tamoxifen)",
		AdministrationType: domain.AdministrationAncillary,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 20, Value: 1.0, ConfidenceWidth: 0},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 20, Value: 0.2, ConfidenceWidth: 0},
		},
		Esters: map[string]domain.Ester{
			"oral": {Label: "Tablet", HalfLifeHours: 120, Weight: 1.0},
		},
		DefaultEster:            "oral",
		DefaultFrequencyPerWeek: 7,
	},
	{
		ID:                 "clomid",
		Name:               "Clomid (Clomiphene)",
		AdministrationType: domain.AdministrationAncillary,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 50, Value: 1.0, ConfidenceWidth: 0},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 50, Value: 0.5, ConfidenceWidth: 0},
		},
		Esters: map[string]domain.Ester{
			"oral": {Label: "Tablet", HalfLifeHours: 120, Weight: 1.0},
		},
		DefaultEster:            "oral",
		DefaultFrequencyPerWeek: 7,
	},
	{
		ID:                 "hcg",
		Name:               "HCG",
		AdministrationType: domain.AdministrationInjectable,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 500, Value: 1.0, ConfidenceWidth: 0},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 500, Value: 0.1, ConfidenceWidth: 0},
		},
		Esters: map[string]domain.Ester{
			"none": {Label: "Standard", HalfLifeHours: 36, Weight: 1.0},
		},
		DefaultEster:            "none",
		DefaultFrequencyPerWeek: 2,
	},
	{
		ID:                 "cabergoline",
		Name:               "Cabergoline (Dostinex)",
		AdministrationType: domain.AdministrationAncillary,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 0.5, Value: 1.0, ConfidenceWidth: 0},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0, ConfidenceWidth: 0},
			{Dose: 0.5, Value: 0.2, ConfidenceWidth: 0},
		},
		Esters: map[string]domain.Ester{
			"oral": {Label: "Tablet", HalfLifeHours: 69, Weight: 1.0},
		},
		DefaultEster:            "oral",
		DefaultFrequencyPerWeek: 7,
	},
}

// Seed inserts the built-in compound catalog into an empty catalog
// database. An already-populated table is left untouched so operator
// edits survive restarts.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM compounds").Scan(&count); err != nil {
		return fmt.Errorf("failed to count compounds: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, c := range seedCompounds {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("seed compound invalid: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO compounds (id, name, administration_type, binding_affinity_nm,
				aromatizing, neuro_sensitive, shbg_sensitive, default_ester,
				default_frequency_per_week, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, string(c.AdministrationType), c.BindingAffinityNM,
			boolToInt(c.Aromatizing), boolToInt(c.NeuroSensitive), boolToInt(c.SHBGSensitive),
			nullableString(c.DefaultEster), c.DefaultFrequencyPerWeek, now, now)
		if err != nil {
			return fmt.Errorf("failed to insert compound %s: %w", c.ID, err)
		}

		if err := insertCurve(tx, c.ID, domain.CurveBenefit, c.BenefitCurve); err != nil {
			return err
		}
		if err := insertCurve(tx, c.ID, domain.CurveRisk, c.RiskCurve); err != nil {
			return err
		}

		for name, e := range c.Esters {
			_, err = tx.Exec(`
				INSERT INTO esters (compound_id, name, label, half_life_hours, weight)
				VALUES (?, ?, ?, ?, ?)`,
				c.ID, name, e.Label, e.HalfLifeHours, e.Weight)
			if err != nil {
				return fmt.Errorf("failed to insert ester %s/%s: %w", c.ID, name, err)
			}
		}
	}

	return tx.Commit()
}

func insertCurve(tx *sql.Tx, compoundID string, curveType domain.CurveType, curve domain.Curve) error {
	for i, p := range curve {
		_, err := tx.Exec(`
			INSERT INTO curve_points (compound_id, curve_type, position, dose, value, confidence_width)
			VALUES (?, ?, ?, ?, ?, ?)`,
			compoundID, string(curveType), i, p.Dose, p.Value, p.ConfidenceWidth)
		if err != nil {
			return fmt.Errorf("failed to insert curve point %s/%s[%d]: %w", compoundID, curveType, i, err)
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

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
