package strategy

import "friday/internal/model"

// Tiers maps a vote score to its recommendation, highest first.
var Tiers = []struct {
	MinScore int
	Label    model.Recommendation
}{
	{3, model.StrongBuy},
	{2, model.Buy},
	{1, model.WeakBuy},
	{0, model.Hold},
	{-1, model.WeakSell},
	{-2, model.Sell},
}

// DefaultTier is the label for scores below -2.
var DefaultTier = model.StrongSell

// mapTier maps a score to a recommendation label.
func mapTier(score int) model.Recommendation {
	for _, t := range Tiers {
		if score >= t.MinScore {
			return t.Label
		}
	}
	return DefaultTier
}

// Evaluate runs every signal rule against the latest indicator row and
// price and reduces the votes to a recommendation. Rules whose inputs are
// undefined do not vote.
func Evaluate(row model.IndicatorRow, price float64) *model.TradeSignal {
	sig := &model.TradeSignal{Votes: make([]model.RuleVote, 0, len(Rules))}
	for _, r := range Rules {
		v := r.Vote(row, price)
		sig.Votes = append(sig.Votes, model.RuleVote{Rule: r.Name, Vote: v})
		switch v {
		case model.VoteBuy:
			sig.BuySignals++
		case model.VoteSell:
			sig.SellSignals++
		}
	}
	sig.Score = sig.BuySignals - sig.SellSignals
	sig.Recommendation = mapTier(sig.Score)
	return sig
}
