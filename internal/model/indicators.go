package model

import "github.com/guregu/null/v6"

// ReturnPeriods are the lookbacks, in observations, used for period returns.
var ReturnPeriods = []int{1, 7, 30, 90, 180, 365}

// IndicatorRow holds every derived value for one timestamp. A value is
// invalid when the window lacks enough history.
type IndicatorRow struct {
	Value    float64
	SMA5     null.Float
	SMA20    null.Float
	SMA50    null.Float
	EMA5     null.Float
	EMA20    null.Float
	RSI14    null.Float
	BBUpper  null.Float
	BBMiddle null.Float
	BBLower  null.Float
	MACD     null.Float
	MACDSig  null.Float
	MACDHist null.Float
	Returns  map[int]null.Float
}

// Return looks up the period return, invalid when absent.
func (r IndicatorRow) Return(period int) null.Float {
	if r.Returns == nil {
		return null.Float{}
	}
	return r.Returns[period]
}

// IndicatorSet is a row per series point, aligned by index.
type IndicatorSet struct {
	Series Series
	Rows   []IndicatorRow
}

// Latest returns the last row, or a zero row for an empty set.
func (s IndicatorSet) Latest() IndicatorRow {
	if len(s.Rows) == 0 {
		return IndicatorRow{}
	}
	return s.Rows[len(s.Rows)-1]
}
