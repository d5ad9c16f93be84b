// Package analysis runs the fetch, clean, indicator, classify and score
// pipeline for stocks and mutual funds.
package analysis

import (
	"github.com/phuslu/log"

	"friday/internal/calculator"
	"friday/internal/collector"
	"friday/internal/model"
	"friday/internal/recorder"
)

const (
	// DefaultWindow is the period, in days or observations, used for the
	// period change, the estimates and the indicator lookback.
	DefaultWindow = 30

	// DefaultPeerCount is how many peers are requested per exchange.
	DefaultPeerCount = 5
)

// Charter renders analysis charts and returns the saved file path.
type Charter interface {
	StockChart(a *model.StockAnalysis, set model.IndicatorSet) (string, error)
	FundChart(a *model.FundAnalysis, set model.IndicatorSet) (string, error)
}

// Analyzer owns the data sources, the optional chart renderer and the
// optional journal.
type Analyzer struct {
	Collector *collector.Collector
	Charts    Charter
	Journal   recorder.Recorder
	Window    int
	PeerCount int
}

// New creates an Analyzer. charts may be nil to skip chart rendering.
func New(col *collector.Collector, charts Charter) *Analyzer {
	return &Analyzer{
		Collector: col,
		Charts:    charts,
		Window:    DefaultWindow,
		PeerCount: DefaultPeerCount,
	}
}

func (a *Analyzer) window() int {
	if a.Window <= 0 {
		return DefaultWindow
	}
	return a.Window
}

func (a *Analyzer) journal(evt *recorder.AnalysisEvent) {
	if a.Journal == nil {
		return
	}
	if err := a.Journal.RecordAnalysis(evt); err != nil {
		log.Warn().Err(err).Str("symbol", evt.Symbol).Msg("record analysis failed")
	}
}

// indicators computes the full set and its filled trailing window.
func (a *Analyzer) indicators(series model.Series) (full, recent model.IndicatorSet) {
	full = calculator.Compute(series)
	return full, calculator.FillLatest(full, a.window())
}
