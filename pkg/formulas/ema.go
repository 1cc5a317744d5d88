package formulas

import (
	"math"

	"github.com/markcheno/go-talib"
)

// SmoothEMA smooths a series with an exponential moving average.
//
// EMA Formula:
//
//	EMA_today = (X_today × multiplier) + (EMA_yesterday × (1 - multiplier))
//	where multiplier = 2 / (period + 1)
//
// The first period-1 positions (where talib emits NaN) are backfilled with
// the raw input so the output is always fully populated and the same
// length as the input. Series shorter than the period are returned
// unchanged.
func SmoothEMA(series []float64, period int) []float64 {
	if len(series) == 0 {
		return nil
	}
	out := make([]float64, len(series))
	copy(out, series)
	if period < 2 || len(series) < period {
		return out
	}

	ema := talib.Ema(series, period)
	for i := period - 1; i < len(ema); i++ {
		if !math.IsNaN(ema[i]) {
			out[i] = ema[i]
		}
	}
	return out
}
