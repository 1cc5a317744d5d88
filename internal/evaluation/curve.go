// Package evaluation implements the dose-response and stack interaction
// engine: curve interpolation, profile personalization, pairwise synergy
// aggregation and stack scoring. Everything in this package is a pure,
// synchronous function of its inputs; catalog and interaction data are
// injected so tests can run against small synthetic datasets.
package evaluation

import (
	"fmt"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
)

// CurveSample is an interpolated point on a dose-response curve.
type CurveSample struct {
	Value           float64 `json:"value"`
	ConfidenceWidth float64 `json:"confidence_width"`
}

// EvaluateCurve interpolates a curve at the requested dose.
//
// Semantics:
//   - an exact sample match returns that sample unchanged
//   - between samples, value and confidence width interpolate linearly by
//     the same ratio
//   - below the first sample the first sample is returned (no downward
//     extrapolation)
//   - above the last sample the last sample is returned; flat
//     extrapolation is the signal the stack evaluator uses to flag
//     "beyond evidence"
//
// An empty curve is a configuration error. The catalog loader rejects it
// long before evaluation, but the evaluator fails loudly too rather than
// fabricating a zero.
func EvaluateCurve(curve domain.Curve, dose float64) (CurveSample, error) {
	if len(curve) == 0 {
		return CurveSample{}, fmt.Errorf("cannot evaluate empty curve")
	}

	if dose <= curve[0].Dose {
		return CurveSample{Value: curve[0].Value, ConfidenceWidth: curve[0].ConfidenceWidth}, nil
	}
	last := curve[len(curve)-1]
	if dose >= last.Dose {
		return CurveSample{Value: last.Value, ConfidenceWidth: last.ConfidenceWidth}, nil
	}

	for i := 0; i < len(curve)-1; i++ {
		cur, next := curve[i], curve[i+1]
		if dose < cur.Dose || dose > next.Dose {
			continue
		}
		if dose == cur.Dose {
			return CurveSample{Value: cur.Value, ConfidenceWidth: cur.ConfidenceWidth}, nil
		}
		ratio := (dose - cur.Dose) / (next.Dose - cur.Dose)
		return CurveSample{
			Value:           cur.Value + ratio*(next.Value-cur.Value),
			ConfidenceWidth: cur.ConfidenceWidth + ratio*(next.ConfidenceWidth-cur.ConfidenceWidth),
		}, nil
	}

	// Unreachable given the boundary checks above.
	return CurveSample{Value: last.Value, ConfidenceWidth: last.ConfidenceWidth}, nil
}
