package model

import (
	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

// EstimateNote accompanies every extrapolated estimate.
const EstimateNote = "These estimates are based on simple trend extrapolation and should not be the sole basis for investment decisions."

// Estimates is a naive linear extrapolation of the latest value.
type Estimates struct {
	Tomorrow float64
	OneWeek  float64
	OneMonth float64
	Note     string
}

// TechnicalSignals are the human readable indicator readings.
type TechnicalSignals struct {
	RSI14           null.Float
	RSISignal       string
	MACDSignal      string
	BollingerSignal string
	MASignals       []string
}

// Peer is a suggested alternative instrument.
type Peer struct {
	Symbol   string
	Name     string
	Exchange Exchange
}

// StockAnalysis is the immutable result of one stock query.
type StockAnalysis struct {
	Instrument   Instrument
	Name         string
	Type         string
	Sector       string
	Industry     string
	LatestPrice  float64
	DailyChange  float64
	PeriodChange float64
	PeriodDays   int
	SMA5         null.Float
	SMA20        null.Float
	Trend        Trend
	Advice       string
	MASignal     MASignal
	Technical    TechnicalSignals
	Signal       TradeSignal
	Estimates    Estimates
	Peers        []Peer
	ChartPath    string
}

// FundMetrics are the mutual fund specific performance measures.
type FundMetrics struct {
	ConsistencyScore float64
	Volatility       float64
	SharpeRatio      float64
}

// FundAnalysis is the immutable result of one mutual fund query.
type FundAnalysis struct {
	Meta                  FundMeta
	Name                  string
	LatestNAV             float64
	DailyChange           float64
	PeriodChange          float64
	PeriodDays            int
	EstimatedAnnualReturn float64
	Trend                 Trend
	Advice                string
	Metrics               FundMetrics
	SIPRecommendation     string
	Estimates             Estimates
	ChartPath             string
}

// AnalysisError is the structured error surfaced to callers instead of a
// raw failure.
type AnalysisError struct {
	Message string `json:"error"`
}

func (e *AnalysisError) Error() string { return e.Message }

// NewAnalysisError builds an AnalysisError.
func NewAnalysisError(msg string) *AnalysisError {
	return &AnalysisError{Message: msg}
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
