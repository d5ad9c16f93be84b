package analysis

import (
	"context"
	"time"

	"github.com/phuslu/log"

	"friday/internal/calculator"
	"friday/internal/model"
	"friday/internal/recorder"
	"friday/internal/strategy"
)

// AnalyzeStock resolves query on the preferred exchange, falling back to
// the other one, and analyzes the first match.
func (a *Analyzer) AnalyzeStock(ctx context.Context, query string, preferred model.Exchange) (*model.StockAnalysis, error) {
	cand, err := a.Collector.FindStock(ctx, query, preferred)
	if err != nil {
		return nil, err
	}
	inst := model.Instrument{Symbol: cand.Symbol, Exchange: cand.Exchange}
	quote, err := a.Collector.StockQuote(ctx, inst)
	if err != nil {
		return nil, err
	}
	res, full := a.analyzeQuote(cand, quote)
	res.Peers = a.Peers(ctx, cand)
	a.renderStockChart(res, full)
	a.journal(recorder.StockEvent(res))

	log.Info().Str("symbol", inst.Symbol).Str("exchange", string(inst.Exchange)).
		Str("trend", string(res.Trend)).Str("recommendation", string(res.Signal.Recommendation)).
		Msg("stock analyzed")
	return res, nil
}

// analyzeQuote derives everything except peers and the chart.
func (a *Analyzer) analyzeQuote(cand model.Candidate, quote *model.StockQuote) (*model.StockAnalysis, model.IndicatorSet) {
	window := a.window()
	series := model.CloseSeries(cand.Symbol, quote.Bars)
	full, recent := a.indicators(series)

	last := series.Last()
	prev := series.Points[series.Len()-2]
	start := periodStart(series, window)

	daily := model.Round2(calculator.PctChange(prev.Value, last.Value))
	period := model.Round2(calculator.PctChange(start.Value, last.Value))
	trend := strategy.ClassifyTrend(period)

	head := full.Latest()
	row := recent.Latest()
	signal := strategy.Evaluate(row, row.Value)

	return &model.StockAnalysis{
		Instrument:   quote.Instrument,
		Name:         cand.Name,
		Type:         cand.Type,
		Sector:       cand.Sector,
		Industry:     cand.Industry,
		LatestPrice:  model.Round2(last.Value),
		DailyChange:  daily,
		PeriodChange: period,
		PeriodDays:   window,
		SMA5:         roundNull(head.SMA5),
		SMA20:        roundNull(head.SMA20),
		Trend:        trend,
		Advice:       strategy.StockAdvice(trend),
		MASignal:     strategy.MovingAverageSignal(last.Value, head.SMA5, head.SMA20),
		Technical:    strategy.Describe(row, row.Value),
		Signal:       *signal,
		Estimates:    strategy.Estimate(last.Value, daily, period, window),
	}, full
}

// periodStart returns the first point within days calendar days of the
// latest point.
func periodStart(s model.Series, days int) model.Point {
	cutoff := s.Last().Time.Add(-time.Duration(days) * 24 * time.Hour)
	for _, p := range s.Points {
		if !p.Time.Before(cutoff) {
			return p
		}
	}
	return s.Last()
}

func (a *Analyzer) renderStockChart(res *model.StockAnalysis, full model.IndicatorSet) {
	if a.Charts == nil {
		return
	}
	path, err := a.Charts.StockChart(res, full)
	if err != nil {
		log.Warn().Err(err).Str("symbol", res.Instrument.Symbol).Msg("stock chart failed")
		return
	}
	res.ChartPath = path
}
