package model

import (
	"strings"
	"time"
)

// Exchange is one of the two Indian equity venues.
type Exchange string

const (
	NSE Exchange = "NSE"
	BSE Exchange = "BSE"
)

// Alternate returns the other exchange.
func (e Exchange) Alternate() Exchange {
	if e == BSE {
		return NSE
	}
	return BSE
}

// Suffix is the Yahoo ticker suffix for the exchange.
func (e Exchange) Suffix() string {
	if e == BSE {
		return ".BO"
	}
	return ".NS"
}

// ParseExchange maps free text to an exchange, defaulting to NSE.
func ParseExchange(s string) Exchange {
	if strings.EqualFold(strings.TrimSpace(s), string(BSE)) {
		return BSE
	}
	return NSE
}

// Instrument identifies a listed equity.
type Instrument struct {
	Symbol   string
	Exchange Exchange
}

// Ticker returns the provider ticker, e.g. "TCS.NS".
func (i Instrument) Ticker() string {
	return i.Symbol + i.Exchange.Suffix()
}

// FundCode is the numeric scheme code of a mutual fund.
type FundCode string

// Candidate is a single instrument search hit.
type Candidate struct {
	Symbol   string
	Name     string
	Exchange Exchange
	Type     string
	Sector   string
	Industry string
}

// FundCandidate is a single mutual fund search hit.
type FundCandidate struct {
	Code FundCode
	Name string
}

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Point is one observation of a value series.
type Point struct {
	Time  time.Time
	Value float64
}

// Series is an ordered value series. After cleaning, timestamps are
// strictly increasing and every value is finite.
type Series struct {
	Name   string
	Points []Point
}

// Values returns a copy of the series values.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Points) }

// Last returns the latest point. The series must not be empty.
func (s Series) Last() Point { return s.Points[len(s.Points)-1] }

// Tail returns a new series holding at most the last n points.
func (s Series) Tail(n int) Series {
	if n >= len(s.Points) || n <= 0 {
		return Series{Name: s.Name, Points: append([]Point(nil), s.Points...)}
	}
	return Series{Name: s.Name, Points: append([]Point(nil), s.Points[len(s.Points)-n:]...)}
}

// CloseSeries builds a close-price series from bars.
func CloseSeries(name string, bars []OHLCV) Series {
	pts := make([]Point, len(bars))
	for i, b := range bars {
		pts[i] = Point{Time: b.Time, Value: b.Close}
	}
	return Series{Name: name, Points: pts}
}

// StockQuote is a cleaned price history for one instrument.
type StockQuote struct {
	Instrument Instrument
	Bars       []OHLCV
	FetchedAt  time.Time
}

// FundMeta describes a mutual fund scheme.
type FundMeta struct {
	Code       FundCode
	SchemeName string
	FundHouse  string
	SchemeType string
}

// FundHistory is a cleaned NAV history for one scheme.
type FundHistory struct {
	Meta      FundMeta
	NAV       Series
	FetchedAt time.Time
}
