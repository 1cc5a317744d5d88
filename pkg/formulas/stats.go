// Package formulas collects the small numeric helpers shared by the
// sweet-spot finder and the simulation module.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// WeightedMean calculates the weighted mean of values. Weights must be the
// same length as values; mismatched input returns 0.
func WeightedMean(values, weights []float64) float64 {
	if len(values) == 0 || len(values) != len(weights) {
		return 0
	}
	return stat.Mean(values, weights)
}

// DoseSweep builds n evenly spaced doses across [min, max] inclusive.
// The sweet-spot finder evaluates a stack at each point.
func DoseSweep(min, max float64, n int) []float64 {
	if n <= 0 || max < min {
		return nil
	}
	if n == 1 {
		return []float64{min}
	}
	dst := make([]float64, n)
	return floats.Span(dst, min, max)
}

// ArgMax returns the index of the largest value, -1 for empty input. NaN
// values are skipped.
func ArgMax(data []float64) int {
	best := -1
	for i, v := range data {
		if math.IsNaN(v) {
			continue
		}
		if best == -1 || v > data[best] {
			best = i
		}
	}
	return best
}
