package analysis

import (
	"context"

	"github.com/guregu/null/v6"
	"github.com/phuslu/log"

	"friday/internal/calculator"
	"friday/internal/model"
	"friday/internal/recorder"
	"friday/internal/strategy"
)

// AnalyzeFund resolves query against the scheme list and analyzes the
// first match.
func (a *Analyzer) AnalyzeFund(ctx context.Context, query string) (*model.FundAnalysis, error) {
	cand, err := a.Collector.FindFund(ctx, query)
	if err != nil {
		return nil, err
	}
	hist, err := a.Collector.FundHistory(ctx, cand.Code)
	if err != nil {
		return nil, err
	}
	res, full := a.analyzeHistory(cand, hist)
	if a.Charts != nil {
		if path, err := a.Charts.FundChart(res, full); err != nil {
			log.Warn().Err(err).Str("fund", string(cand.Code)).Msg("fund chart failed")
		} else {
			res.ChartPath = path
		}
	}

	a.journal(recorder.FundEvent(res))

	log.Info().Str("fund", string(cand.Code)).Str("trend", string(res.Trend)).
		Float64("consistency", res.Metrics.ConsistencyScore).Msg("fund analyzed")
	return res, nil
}

// analyzeHistory uses the last window observations for the period change.
func (a *Analyzer) analyzeHistory(cand model.FundCandidate, hist *model.FundHistory) (*model.FundAnalysis, model.IndicatorSet) {
	window := a.window()
	values := hist.NAV.Values()
	n := len(values)
	obs := window
	if n < obs {
		obs = n
	}

	latest, prev, start := values[n-1], values[n-2], values[n-obs]
	daily := model.Round2(calculator.PctChange(prev, latest))
	period := model.Round2(calculator.PctChange(start, latest))
	trend := strategy.ClassifyTrend(period)

	full, recent := a.indicators(hist.NAV)
	recentValues := make([]float64, len(recent.Rows))
	returns30 := make([]null.Float, len(recent.Rows))
	for i, r := range recent.Rows {
		recentValues[i] = r.Value
		returns30[i] = r.Return(30)
	}
	metrics := model.FundMetrics{
		ConsistencyScore: model.Round2(calculator.ConsistencyScore(returns30)),
		Volatility:       model.Round2(calculator.Volatility(recentValues)),
		SharpeRatio:      model.Round2(calculator.SharpeRatio(recentValues)),
	}

	name := cand.Name
	if name == "" {
		name = hist.Meta.SchemeName
	}
	return &model.FundAnalysis{
		Meta:                  hist.Meta,
		Name:                  name,
		LatestNAV:             latest,
		DailyChange:           daily,
		PeriodChange:          period,
		PeriodDays:            obs,
		EstimatedAnnualReturn: model.Round2(calculator.AnnualisedReturn(period, obs)),
		Trend:                 trend,
		Advice:                strategy.FundAdvice(trend),
		Metrics:               metrics,
		SIPRecommendation:     strategy.SIPRecommendation(trend, metrics.ConsistencyScore),
		Estimates:             strategy.Estimate(latest, daily, period, window),
	}, full
}

func roundNull(v null.Float) null.Float {
	if !v.Valid {
		return v
	}
	return null.FloatFrom(model.Round2(v.Float64))
}
