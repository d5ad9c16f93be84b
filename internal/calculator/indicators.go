package calculator

import (
	"github.com/guregu/null/v6"

	"friday/internal/model"
)

// Compute derives every indicator for the series. The input is not
// modified; the returned set owns a copy of the series.
func Compute(series model.Series) model.IndicatorSet {
	values := series.Values()
	n := len(values)

	sma5 := SMA(values, 5)
	sma20 := SMA(values, 20)
	sma50 := SMA(values, 50)
	ema5 := EMA(values, 5)
	ema20 := EMA(values, 20)
	rsi := RSI(values, 14)
	bb := Bollinger(values, 20, 2)
	macd := MACD(values, 12, 26, 9)

	returns := make(map[int][]null.Float, len(model.ReturnPeriods))
	for _, p := range model.ReturnPeriods {
		returns[p] = Returns(values, p)
	}

	rows := make([]model.IndicatorRow, n)
	for i := 0; i < n; i++ {
		r := model.IndicatorRow{
			Value:    values[i],
			SMA5:     sma5[i],
			SMA20:    sma20[i],
			SMA50:    sma50[i],
			EMA5:     ema5[i],
			EMA20:    ema20[i],
			RSI14:    rsi[i],
			BBUpper:  bb.Upper[i],
			BBMiddle: bb.Middle[i],
			BBLower:  bb.Lower[i],
			MACD:     macd.MACD[i],
			MACDSig:  macd.Signal[i],
			MACDHist: macd.Histogram[i],
			Returns:  make(map[int]null.Float, len(model.ReturnPeriods)),
		}
		for _, p := range model.ReturnPeriods {
			r.Returns[p] = returns[p][i]
		}
		rows[i] = r
	}
	return model.IndicatorSet{Series: series.Tail(n), Rows: rows}
}

// FillLatest keeps the last lookback rows and fills gaps in each column
// forward, then backward. Columns with no valid value stay invalid.
func FillLatest(set model.IndicatorSet, lookback int) model.IndicatorSet {
	start := 0
	if lookback > 0 && len(set.Rows) > lookback {
		start = len(set.Rows) - lookback
	}
	rows := make([]model.IndicatorRow, len(set.Rows)-start)
	for i := range rows {
		src := set.Rows[start+i]
		rows[i] = src
		rows[i].Returns = make(map[int]null.Float, len(src.Returns))
		for k, v := range src.Returns {
			rows[i].Returns[k] = v
		}
	}

	columns := []func(*model.IndicatorRow) *null.Float{
		func(r *model.IndicatorRow) *null.Float { return &r.SMA5 },
		func(r *model.IndicatorRow) *null.Float { return &r.SMA20 },
		func(r *model.IndicatorRow) *null.Float { return &r.SMA50 },
		func(r *model.IndicatorRow) *null.Float { return &r.EMA5 },
		func(r *model.IndicatorRow) *null.Float { return &r.EMA20 },
		func(r *model.IndicatorRow) *null.Float { return &r.RSI14 },
		func(r *model.IndicatorRow) *null.Float { return &r.BBUpper },
		func(r *model.IndicatorRow) *null.Float { return &r.BBMiddle },
		func(r *model.IndicatorRow) *null.Float { return &r.BBLower },
		func(r *model.IndicatorRow) *null.Float { return &r.MACD },
		func(r *model.IndicatorRow) *null.Float { return &r.MACDSig },
		func(r *model.IndicatorRow) *null.Float { return &r.MACDHist },
	}
	for _, col := range columns {
		fillColumn(rows, col)
	}
	for _, p := range model.ReturnPeriods {
		fillReturn(rows, p)
	}

	return model.IndicatorSet{Series: set.Series.Tail(len(rows)), Rows: rows}
}

func fillColumn(rows []model.IndicatorRow, col func(*model.IndicatorRow) *null.Float) {
	var last null.Float
	for i := range rows {
		v := col(&rows[i])
		if v.Valid {
			last = *v
		} else if last.Valid {
			*v = last
		}
	}
	var next null.Float
	for i := len(rows) - 1; i >= 0; i-- {
		v := col(&rows[i])
		if v.Valid {
			next = *v
		} else if next.Valid {
			*v = next
		}
	}
}

func fillReturn(rows []model.IndicatorRow, period int) {
	var last null.Float
	for i := range rows {
		v := rows[i].Returns[period]
		if v.Valid {
			last = v
		} else if last.Valid {
			rows[i].Returns[period] = last
		}
	}
	var next null.Float
	for i := len(rows) - 1; i >= 0; i-- {
		v := rows[i].Returns[period]
		if v.Valid {
			next = v
		} else if next.Valid {
			rows[i].Returns[period] = next
		}
	}
}
