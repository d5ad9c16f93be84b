package model

// Vote is the direction a single signal rule casts.
type Vote int

const (
	VoteNone Vote = iota
	VoteBuy
	VoteSell
)

func (v Vote) String() string {
	switch v {
	case VoteBuy:
		return "buy"
	case VoteSell:
		return "sell"
	default:
		return "none"
	}
}

// Recommendation is the 7-point label derived from the vote score.
type Recommendation string

const (
	StrongBuy  Recommendation = "Strong Buy"
	Buy        Recommendation = "Buy"
	WeakBuy    Recommendation = "Weak Buy"
	Hold       Recommendation = "Hold"
	WeakSell   Recommendation = "Weak Sell"
	Sell       Recommendation = "Sell"
	StrongSell Recommendation = "Strong Sell"
)

// RuleVote records how one rule voted.
type RuleVote struct {
	Rule string
	Vote Vote
}

// TradeSignal is the final output of the signal scorer.
type TradeSignal struct {
	Votes          []RuleVote
	BuySignals     int
	SellSignals    int
	Score          int
	Recommendation Recommendation
}

// Trend is a banded label for the period percentage change.
type Trend string

const (
	StrongUpward   Trend = "Strong Upward"
	Upward         Trend = "Upward"
	Sideways       Trend = "Sideways"
	Downward       Trend = "Downward"
	StrongDownward Trend = "Strong Downward"
	UnknownTrend   Trend = "Unknown"
)

// MASignal describes the latest price against SMA5 and SMA20.
type MASignal string

const (
	MABullish          MASignal = "Bullish"
	MABearish          MASignal = "Bearish"
	MAReversalUpside   MASignal = "Potential reversal to upside"
	MAReversalDownside MASignal = "Potential reversal to downside"
	MANeutral          MASignal = "Neutral"
)
