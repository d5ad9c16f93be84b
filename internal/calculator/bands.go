package calculator

import (
	"math"

	"github.com/guregu/null/v6"
)

// Bands is a Bollinger envelope aligned with its input.
type Bands struct {
	Upper  []null.Float
	Middle []null.Float
	Lower  []null.Float
}

// Bollinger computes middle = SMA(window) and upper/lower = middle ± k
// sample standard deviations over the same window.
func Bollinger(values []float64, window int, k float64) Bands {
	b := Bands{
		Upper:  make([]null.Float, len(values)),
		Middle: SMA(values, window),
		Lower:  make([]null.Float, len(values)),
	}
	sd := RollingStd(values, window)
	for i := range values {
		if !b.Middle[i].Valid || !sd[i].Valid {
			continue
		}
		m := b.Middle[i].Float64
		b.Upper[i] = null.FloatFrom(m + k*sd[i].Float64)
		b.Lower[i] = null.FloatFrom(m - k*sd[i].Float64)
	}
	return b
}

// RollingStd is the trailing sample standard deviation (n-1 denominator).
func RollingStd(values []float64, window int) []null.Float {
	out := make([]null.Float, len(values))
	if window < 2 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		out[i] = null.FloatFrom(stddev(values[i-window+1 : i+1]))
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	m := mean(values)
	ss := 0.0
	for _, v := range values {
		ss += (v - m) * (v - m)
	}
	return math.Sqrt(ss / float64(len(values)-1))
}
