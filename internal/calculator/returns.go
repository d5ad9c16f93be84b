package calculator

import (
	"math"

	"github.com/guregu/null/v6"
)

// PctChange is (to-from)/from*100, NaN for a zero base.
func PctChange(from, to float64) float64 {
	if from == 0 {
		return math.NaN()
	}
	return (to - from) / from * 100
}

// Returns computes the percentage change over period observations.
// Indices below period, or with a zero base, are invalid.
func Returns(values []float64, period int) []null.Float {
	out := make([]null.Float, len(values))
	if period <= 0 {
		return out
	}
	for i := period; i < len(values); i++ {
		if values[i-period] == 0 {
			continue
		}
		out[i] = null.FloatFrom(PctChange(values[i-period], values[i]))
	}
	return out
}

// DailyReturns is the fractional one-step change, dropping the first point.
func DailyReturns(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		out = append(out, values[i]/values[i-1]-1)
	}
	return out
}
