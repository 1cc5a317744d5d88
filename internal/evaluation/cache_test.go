package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
)

func TestSignature_OrderIndependent(t *testing.T) {
	profile := domain.DefaultProfile()

	a := Signature([]domain.StackEntry{
		{CompoundID: "alpha", Dose: 300},
		{CompoundID: "beta", Dose: 150},
	}, profile)
	b := Signature([]domain.StackEntry{
		{CompoundID: "beta", Dose: 150},
		{CompoundID: "alpha", Dose: 300},
	}, profile)

	assert.Equal(t, a, b)
}

func TestSignature_SensitiveToEveryInput(t *testing.T) {
	base := []domain.StackEntry{{CompoundID: "alpha", Dose: 300, FrequencyPerWeek: 2, Ester: "enanthate"}}
	profile := domain.DefaultProfile()
	reference := Signature(base, profile)

	dosed := []domain.StackEntry{{CompoundID: "alpha", Dose: 301, FrequencyPerWeek: 2, Ester: "enanthate"}}
	assert.NotEqual(t, reference, Signature(dosed, profile))

	pinned := []domain.StackEntry{{CompoundID: "alpha", Dose: 300, FrequencyPerWeek: 3, Ester: "enanthate"}}
	assert.NotEqual(t, reference, Signature(pinned, profile))

	estered := []domain.StackEntry{{CompoundID: "alpha", Dose: 300, FrequencyPerWeek: 2, Ester: "propionate"}}
	assert.NotEqual(t, reference, Signature(estered, profile))

	aged := profile
	aged.Age = 44
	assert.NotEqual(t, reference, Signature(base, aged))

	shbg := 55.0
	measured := profile
	measured.SHBG = &shbg
	assert.NotEqual(t, reference, Signature(base, measured))

	lab := profile
	lab.LabMode = domain.LabMode{
		Enabled: true,
		Scales:  map[domain.ScaleFactor]float64{domain.ScaleAge: 0.5},
	}
	assert.NotEqual(t, reference, Signature(base, lab))
}

func TestResultCache_GetPut(t *testing.T) {
	cache := NewResultCache(2)
	result := &StackResult{Totals: StackTotals{NetScore: 1.5}}

	_, ok := cache.Get("k1")
	assert.False(t, ok)

	cache.Put("k1", result)
	got, ok := cache.Get("k1")
	require.True(t, ok)
	assert.Same(t, result, got)
}

func TestResultCache_FIFOEviction(t *testing.T) {
	cache := NewResultCache(2)
	cache.Put("k1", &StackResult{})
	cache.Put("k2", &StackResult{})
	cache.Put("k3", &StackResult{})

	_, ok := cache.Get("k1")
	assert.False(t, ok, "oldest entry should be evicted")
	_, ok = cache.Get("k2")
	assert.True(t, ok)
	_, ok = cache.Get("k3")
	assert.True(t, ok)
	assert.Equal(t, 2, cache.Len())
}

func TestResultCache_ZeroSizeDisabled(t *testing.T) {
	cache := NewResultCache(0)
	cache.Put("k1", &StackResult{})

	_, ok := cache.Get("k1")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}
