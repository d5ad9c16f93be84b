package calculator

import "github.com/guregu/null/v6"

// RSI computes the relative strength index from rolling means of the
// positive and negative price deltas. The first delta counts as zero, so
// the first valid index is period-1.
//
// A window with no losses and some gains yields 100. A flat window has no
// defined ratio and stays invalid.
func RSI(values []float64, period int) []null.Float {
	out := make([]null.Float, len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	gains := make([]float64, len(values))
	losses := make([]float64, len(values))
	for i := 1; i < len(values); i++ {
		d := values[i] - values[i-1]
		if d > 0 {
			gains[i] = d
		} else if d < 0 {
			losses[i] = -d
		}
	}
	for i := period - 1; i < len(values); i++ {
		var g, l float64
		for j := i - period + 1; j <= i; j++ {
			g += gains[j]
			l += losses[j]
		}
		avgGain := g / float64(period)
		avgLoss := l / float64(period)
		switch {
		case avgLoss == 0 && avgGain == 0:
			continue
		case avgLoss == 0:
			out[i] = null.FloatFrom(100)
		default:
			rs := avgGain / avgLoss
			out[i] = null.FloatFrom(100 - 100/(1+rs))
		}
	}
	return out
}
