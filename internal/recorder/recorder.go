// Package recorder keeps a write-only journal of handled messages and
// analysis outcomes.
package recorder

import (
	"time"

	"friday/internal/model"
)

// Channel names the transport a message arrived on.
type Channel string

const (
	ChannelHTTP      Channel = "http"
	ChannelWebSocket Channel = "websocket"
	ChannelTelegram  Channel = "telegram"
	ChannelCLI       Channel = "cli"
)

// Interaction is one handled message.
type Interaction struct {
	At        time.Time
	RequestID string
	Channel   Channel
	Rule      string
	Duration  time.Duration
	Chart     bool
	Failed    bool
}

// AnalysisKind separates stock and mutual fund analyses.
type AnalysisKind string

const (
	KindStock AnalysisKind = "stock"
	KindFund  AnalysisKind = "fund"
)

// AnalysisEvent summarizes one completed analysis.
type AnalysisEvent struct {
	At             time.Time
	Kind           AnalysisKind
	Symbol         string // ticker symbol or scheme code
	Exchange       string // empty for funds
	Price          float64
	PeriodChange   float64
	Trend          model.Trend
	Recommendation string
}

// StockEvent builds the journal entry for a stock analysis.
func StockEvent(a *model.StockAnalysis) *AnalysisEvent {
	return &AnalysisEvent{
		Kind:           KindStock,
		Symbol:         a.Instrument.Symbol,
		Exchange:       string(a.Instrument.Exchange),
		Price:          a.LatestPrice,
		PeriodChange:   a.PeriodChange,
		Trend:          a.Trend,
		Recommendation: string(a.Signal.Recommendation),
	}
}

// FundEvent builds the journal entry for a mutual fund analysis.
func FundEvent(a *model.FundAnalysis) *AnalysisEvent {
	return &AnalysisEvent{
		Kind:           KindFund,
		Symbol:         string(a.Meta.Code),
		Price:          a.LatestNAV,
		PeriodChange:   a.PeriodChange,
		Trend:          a.Trend,
		Recommendation: a.SIPRecommendation,
	}
}

// Recorder persists journal entries. Nothing reads them back at runtime.
type Recorder interface {
	RecordInteraction(evt *Interaction) error
	RecordAnalysis(evt *AnalysisEvent) error
	Close() error
}
