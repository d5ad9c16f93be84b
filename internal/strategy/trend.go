package strategy

import (
	"math"

	"github.com/guregu/null/v6"

	"friday/internal/model"
)

// trendBands are checked top-down; a change strictly above Above matches.
var trendBands = []struct {
	Above float64
	Trend model.Trend
}{
	{5, model.StrongUpward},
	{2, model.Upward},
	{-2, model.Sideways},
	{-5, model.Downward},
}

// ClassifyTrend maps a period percentage change to a trend band.
// Non-finite input maps to UnknownTrend.
func ClassifyTrend(change float64) model.Trend {
	if math.IsNaN(change) || math.IsInf(change, 0) {
		return model.UnknownTrend
	}
	for _, b := range trendBands {
		if change > b.Above {
			return b.Trend
		}
	}
	return model.StrongDownward
}

var stockAdvice = map[model.Trend]string{
	model.StrongUpward:   "Consider taking profits if already invested. For new investors, wait for a pullback.",
	model.Upward:         "Hold if already invested. For new investors, consider partial position.",
	model.Sideways:       "Hold if already invested. For new investors, consider dollar-cost averaging.",
	model.Downward:       "Hold if long-term investor. For short-term, consider reducing position.",
	model.StrongDownward: "Consider cutting losses if short-term investor. For long-term, potential buying opportunity if fundamentals are strong.",
}

var fundAdvice = map[model.Trend]string{
	model.StrongUpward:   "Consider continuing SIP. Good performance metrics.",
	model.Upward:         "Continue SIP investments. Fund showing positive momentum.",
	model.Sideways:       "Hold SIP investments. Monitor performance in coming weeks.",
	model.Downward:       "Continue SIP for dollar-cost averaging. Review fund fundamentals.",
	model.StrongDownward: "Evaluate fund manager's strategy and performance. Consider researching alternatives while continuing SIP for cost averaging.",
}

const unknownAdvice = "Not enough price history to judge the trend."

// StockAdvice returns the advisory sentence for an equity trend.
func StockAdvice(t model.Trend) string {
	if s, ok := stockAdvice[t]; ok {
		return s
	}
	return unknownAdvice
}

// FundAdvice returns the advisory sentence for a mutual fund trend.
func FundAdvice(t model.Trend) string {
	if s, ok := fundAdvice[t]; ok {
		return s
	}
	return unknownAdvice
}

// MovingAverageSignal compares the latest price with SMA5 and SMA20.
func MovingAverageSignal(price float64, sma5, sma20 null.Float) model.MASignal {
	if !sma5.Valid || !sma20.Valid {
		return model.MANeutral
	}
	above5 := price > sma5.Float64
	above20 := price > sma20.Float64
	switch {
	case above5 && above20:
		return model.MABullish
	case !above5 && !above20:
		return model.MABearish
	case above5:
		return model.MAReversalUpside
	default:
		return model.MAReversalDownside
	}
}

// SIPRecommendation combines a fund trend with its consistency score.
func SIPRecommendation(t model.Trend, consistency float64) string {
	switch {
	case (t == model.StrongUpward || t == model.Upward) && consistency > 6:
		return "Recommended for SIP investments"
	case t == model.Sideways && consistency > 5:
		return "Suitable for SIP investments with regular monitoring"
	case (t == model.Downward || t == model.StrongDownward) && consistency > 7:
		return "Consider SIP for cost averaging, but review fund fundamentals"
	}
	return "Research further before starting SIP investments"
}

// Estimate extrapolates the latest value linearly: tomorrow from the
// daily change, one week and one month from the period change spread
// over days.
func Estimate(latest, dailyChange, periodChange float64, days int) model.Estimates {
	if days <= 0 {
		days = 30
	}
	return model.Estimates{
		Tomorrow: model.Round2(latest * (1 + dailyChange/100)),
		OneWeek:  model.Round2(latest * (1 + periodChange/100*7/float64(days))),
		OneMonth: model.Round2(latest * (1 + periodChange/100*30/float64(days))),
		Note:     model.EstimateNote,
	}
}
