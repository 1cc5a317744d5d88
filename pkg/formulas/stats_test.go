package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	assert.Equal(t, 0.0, Mean(nil))
}

func TestStdDev(t *testing.T) {
	assert.InDelta(t, 1.0, StdDev([]float64{1, 2, 3}), 1e-9)
	assert.Equal(t, 0.0, StdDev(nil))
}

func TestWeightedMean(t *testing.T) {
	assert.InDelta(t, 2.5, WeightedMean([]float64{1, 3}, []float64{1, 3}), 1e-9)
	assert.Equal(t, 0.0, WeightedMean([]float64{1, 2}, []float64{1}))
}

func TestDoseSweep(t *testing.T) {
	sweep := DoseSweep(0, 100, 5)
	require.Len(t, sweep, 5)
	assert.Equal(t, 0.0, sweep[0])
	assert.Equal(t, 25.0, sweep[1])
	assert.Equal(t, 100.0, sweep[4])

	assert.Nil(t, DoseSweep(100, 0, 5))
	assert.Equal(t, []float64{50}, DoseSweep(50, 100, 1))
}

func TestArgMax(t *testing.T) {
	assert.Equal(t, 2, ArgMax([]float64{1, 3, 5, 2}))
	assert.Equal(t, -1, ArgMax(nil))
}

func TestSmoothEMA(t *testing.T) {
	series := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	out := SmoothEMA(series, 3)

	require.Len(t, out, len(series))
	// Positions before the period backfill with the raw input.
	assert.Equal(t, 1.0, out[0])
	assert.Equal(t, 2.0, out[1])
	// The smoothed tail lags a rising series.
	assert.Less(t, out[len(out)-1], 8.0)
	assert.Greater(t, out[len(out)-1], 6.0)
}

func TestSmoothEMA_NoNaNLeaks(t *testing.T) {
	series := []float64{4, 4, 4, 4, 4, 4}
	out := SmoothEMA(series, 4)

	require.Len(t, out, len(series))
	for i, v := range out {
		assert.False(t, math.IsNaN(v), "position %d is NaN", i)
	}
}

func TestSmoothEMA_ShortSeriesUnchanged(t *testing.T) {
	series := []float64{1, 2}
	assert.Equal(t, series, SmoothEMA(series, 5))
	assert.Nil(t, SmoothEMA(nil, 5))
}
