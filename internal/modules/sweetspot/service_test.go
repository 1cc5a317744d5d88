package sweetspot

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
)

type stubCatalog map[string]*domain.Compound

func (c stubCatalog) Compound(id string) (*domain.Compound, bool) {
	compound, ok := c[id]
	return compound, ok
}

// peaked has its best net score in the middle of the dose range: benefit
// plateaus while risk keeps accelerating.
func peakedCompound() *domain.Compound {
	return &domain.Compound{
		ID:                 "peaked",
		Name:               "peaked",
		AdministrationType: domain.AdministrationInjectable,
		BenefitCurve: domain.Curve{
			{Dose: 0, Value: 0},
			{Dose: 200, Value: 3},
			{Dose: 400, Value: 5},
			{Dose: 600, Value: 5.5},
			{Dose: 800, Value: 5.7},
		},
		RiskCurve: domain.Curve{
			{Dose: 0, Value: 0},
			{Dose: 200, Value: 0.5},
			{Dose: 400, Value: 1.5},
			{Dose: 600, Value: 4},
			{Dose: 800, Value: 8},
		},
	}
}

func newTestService() *Service {
	return NewService(stubCatalog{"peaked": peakedCompound()}, zerolog.Nop())
}

func TestFindLocatesInteriorPeak(t *testing.T) {
	service := newTestService()

	result, err := service.Find("peaked", domain.DefaultProfile())
	require.NoError(t, err)

	// Net score rises to 400 then falls hard; the peak is interior.
	assert.Greater(t, result.BestDose, 0.0)
	assert.Less(t, result.BestDose, 800.0)
	assert.Greater(t, result.BestNet, 0.0)
	assert.LessOrEqual(t, result.RangeLow, result.BestDose)
	assert.GreaterOrEqual(t, result.RangeHigh, result.BestDose)
}

func TestFindSweepIncludesMidpoints(t *testing.T) {
	service := newTestService()

	result, err := service.Find("peaked", domain.DefaultProfile())
	require.NoError(t, err)

	doses := make(map[float64]bool)
	for _, p := range result.Points {
		doses[p.Dose] = true
	}
	// Sample doses and the midpoints between them are all present.
	for _, d := range []float64{0, 100, 200, 300, 400, 500, 600, 700, 800} {
		assert.True(t, doses[d], "missing dose %v", d)
	}
}

func TestFindPointsAreMonotonicInDose(t *testing.T) {
	service := newTestService()

	result, err := service.Find("peaked", domain.DefaultProfile())
	require.NoError(t, err)

	for i := 1; i < len(result.Points); i++ {
		assert.Less(t, result.Points[i-1].Dose, result.Points[i].Dose)
	}
}

func TestFindUnknownCompound(t *testing.T) {
	service := newTestService()

	_, err := service.Find("ghost", domain.DefaultProfile())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown compound")
}

func TestFindRejectsInvalidProfile(t *testing.T) {
	service := newTestService()

	profile := domain.DefaultProfile()
	profile.Experience = "grizzled"

	_, err := service.Find("peaked", profile)
	require.Error(t, err)
}

func TestFindRangeCoversNearPeakDoses(t *testing.T) {
	service := newTestService()

	result, err := service.Find("peaked", domain.DefaultProfile())
	require.NoError(t, err)

	threshold := result.BestNet * 0.90
	for _, p := range result.Points {
		if p.Dose >= result.RangeLow && p.Dose <= result.RangeHigh && p.Dose >= result.BestDose {
			// Doses inside the range on the falling side stay near the peak
			// until the first excluded dose.
			if p.Dose == result.RangeHigh {
				assert.GreaterOrEqual(t, p.Smoothed, threshold)
			}
		}
	}
}
