package strategy

import (
	"github.com/guregu/null/v6"

	"friday/internal/model"
)

// Rule is one independent indicator comparison. It casts at most one vote.
type Rule struct {
	Name string
	Vote func(row model.IndicatorRow, price float64) model.Vote
}

// Rules are evaluated in order; order only affects how votes are listed.
var Rules = []Rule{
	{Name: "rsi", Vote: voteRSI},
	{Name: "macd", Vote: voteMACD},
	{Name: "bollinger", Vote: voteBollinger},
	{Name: "sma5_sma20", Vote: voteCross(func(r model.IndicatorRow) (null.Float, null.Float) { return r.SMA5, r.SMA20 })},
	{Name: "sma20_sma50", Vote: voteCross(func(r model.IndicatorRow) (null.Float, null.Float) { return r.SMA20, r.SMA50 })},
}

// voteRSI: oversold below 30 buys, overbought above 70 sells.
func voteRSI(row model.IndicatorRow, _ float64) model.Vote {
	if !row.RSI14.Valid {
		return model.VoteNone
	}
	switch rsi := row.RSI14.Float64; {
	case rsi < 30:
		return model.VoteBuy
	case rsi > 70:
		return model.VoteSell
	}
	return model.VoteNone
}

func voteMACD(row model.IndicatorRow, _ float64) model.Vote {
	return compare(row.MACD, row.MACDSig)
}

// voteBollinger buys below the lower band and sells above the upper band.
func voteBollinger(row model.IndicatorRow, price float64) model.Vote {
	if row.BBLower.Valid && price < row.BBLower.Float64 {
		return model.VoteBuy
	}
	if row.BBUpper.Valid && price > row.BBUpper.Float64 {
		return model.VoteSell
	}
	return model.VoteNone
}

func voteCross(pick func(model.IndicatorRow) (null.Float, null.Float)) func(model.IndicatorRow, float64) model.Vote {
	return func(row model.IndicatorRow, _ float64) model.Vote {
		fast, slow := pick(row)
		return compare(fast, slow)
	}
}

// compare buys when a is strictly above b and sells when strictly below.
func compare(a, b null.Float) model.Vote {
	if !a.Valid || !b.Valid {
		return model.VoteNone
	}
	switch {
	case a.Float64 > b.Float64:
		return model.VoteBuy
	case a.Float64 < b.Float64:
		return model.VoteSell
	}
	return model.VoteNone
}

// Describe renders the indicator readings behind the votes.
func Describe(row model.IndicatorRow, price float64) model.TechnicalSignals {
	ts := model.TechnicalSignals{RSI14: row.RSI14}
	if row.RSI14.Valid {
		ts.RSI14 = null.FloatFrom(model.Round2(row.RSI14.Float64))
		switch {
		case row.RSI14.Float64 > 70:
			ts.RSISignal = "Overbought - potential sell signal"
		case row.RSI14.Float64 < 30:
			ts.RSISignal = "Oversold - potential buy signal"
		default:
			ts.RSISignal = "Neutral"
		}
	}
	if row.MACD.Valid && row.MACDSig.Valid {
		if row.MACD.Float64 > row.MACDSig.Float64 {
			ts.MACDSignal = "Bullish - MACD above signal line"
		} else {
			ts.MACDSignal = "Bearish - MACD below signal line"
		}
	}
	if row.BBUpper.Valid && row.BBLower.Valid {
		switch {
		case price > row.BBUpper.Float64:
			ts.BollingerSignal = "Price above upper Bollinger Band - potential sell signal"
		case price < row.BBLower.Float64:
			ts.BollingerSignal = "Price below lower Bollinger Band - potential buy signal"
		default:
			ts.BollingerSignal = "Price within Bollinger Bands - neutral"
		}
	}
	if row.SMA5.Valid && row.SMA20.Valid {
		if row.SMA5.Float64 > row.SMA20.Float64 {
			ts.MASignals = append(ts.MASignals, "Short-term uptrend (SMA5 > SMA20)")
		} else {
			ts.MASignals = append(ts.MASignals, "Short-term downtrend (SMA5 < SMA20)")
		}
	}
	if row.SMA20.Valid && row.SMA50.Valid {
		if row.SMA20.Float64 > row.SMA50.Float64 {
			ts.MASignals = append(ts.MASignals, "Medium-term uptrend (SMA20 > SMA50)")
		} else {
			ts.MASignals = append(ts.MASignals, "Medium-term downtrend (SMA20 < SMA50)")
		}
	}
	return ts
}
