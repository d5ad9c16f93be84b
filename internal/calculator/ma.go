package calculator

import "github.com/guregu/null/v6"

// SMA computes the trailing simple moving average. Indices below window-1
// are invalid.
func SMA(values []float64, window int) []null.Float {
	out := make([]null.Float, len(values))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += values[j]
		}
		out[i] = null.FloatFrom(sum / float64(window))
	}
	return out
}

// EMA computes the exponentially weighted mean with alpha 2/(span+1),
// seeded from the first value without bias adjustment.
func EMA(values []float64, span int) []null.Float {
	raw := ema(values, span)
	out := make([]null.Float, len(raw))
	for i, v := range raw {
		out[i] = null.FloatFrom(v)
	}
	return out
}

func ema(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 || span <= 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// CalculateSMA returns the latest simple moving average over period, or
// false when there is not enough data.
func CalculateSMA(prices []float64, period int) (float64, bool) {
	if period <= 0 || len(prices) < period {
		return 0, false
	}
	s := SMA(prices[len(prices)-period:], period)
	return s[period-1].Float64, true
}
