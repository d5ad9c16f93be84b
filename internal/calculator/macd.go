package calculator

import "github.com/guregu/null/v6"

// MACDLines holds the MACD line, its signal line and the histogram.
type MACDLines struct {
	MACD      []null.Float
	Signal    []null.Float
	Histogram []null.Float
}

// MACD computes EMA(fast) - EMA(slow), the EMA(signal) of that difference
// and their histogram. Every index is valid since the EMAs are seeded.
func MACD(values []float64, fast, slow, signal int) MACDLines {
	f := ema(values, fast)
	s := ema(values, slow)
	line := make([]float64, len(values))
	for i := range values {
		line[i] = f[i] - s[i]
	}
	sig := ema(line, signal)
	out := MACDLines{
		MACD:      make([]null.Float, len(values)),
		Signal:    make([]null.Float, len(values)),
		Histogram: make([]null.Float, len(values)),
	}
	for i := range values {
		out.MACD[i] = null.FloatFrom(line[i])
		out.Signal[i] = null.FloatFrom(sig[i])
		out.Histogram[i] = null.FloatFrom(line[i] - sig[i])
	}
	return out
}
