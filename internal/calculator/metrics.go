package calculator

import (
	"math"

	"github.com/guregu/null/v6"
)

// RiskFreeDaily is a 4% annual risk-free rate spread over 365 days.
const RiskFreeDaily = 0.04 / 365

// ConsistencyScore scales the share of positive valid returns to 0..10.
func ConsistencyScore(returns []null.Float) float64 {
	total, positive := 0, 0
	for _, r := range returns {
		if !r.Valid {
			continue
		}
		total++
		if r.Float64 > 0 {
			positive++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(positive) / float64(total) * 10
}

// Volatility is the sample standard deviation of daily returns, in percent.
func Volatility(values []float64) float64 {
	daily := DailyReturns(values)
	if len(daily) < 2 {
		return 0
	}
	return stddev(daily) * 100
}

// SharpeRatio annualises the mean daily excess return over 252 sessions.
// It is zero when returns do not vary.
func SharpeRatio(values []float64) float64 {
	daily := DailyReturns(values)
	if len(daily) < 2 {
		return 0
	}
	sd := stddev(daily)
	if sd == 0 || math.IsNaN(sd) {
		return 0
	}
	return (mean(daily) - RiskFreeDaily) / sd * math.Sqrt(252)
}

// AnnualisedReturn scales a period change linearly to 365 days.
func AnnualisedReturn(periodChange float64, days int) float64 {
	if days <= 0 {
		return 0
	}
	return periodChange * 365 / float64(days)
}
