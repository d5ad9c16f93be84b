package analysis

import (
	"context"
	"strings"

	"friday/internal/model"
)

// popularStocks fill the peer list when searches return too few matches.
var popularStocks = []model.Peer{
	{Symbol: "RELIANCE", Name: "Reliance Industries", Exchange: model.NSE},
	{Symbol: "TCS", Name: "Tata Consultancy Services", Exchange: model.NSE},
	{Symbol: "HDFC", Name: "HDFC Bank", Exchange: model.NSE},
	{Symbol: "INFY", Name: "Infosys", Exchange: model.NSE},
	{Symbol: "ITC", Name: "ITC Limited", Exchange: model.NSE},
	{Symbol: "SBIN", Name: "State Bank of India", Exchange: model.NSE},
	{Symbol: "WIPRO", Name: "Wipro", Exchange: model.NSE},
	{Symbol: "ADANIENT", Name: "Adani Enterprises", Exchange: model.NSE},
	{Symbol: "TATAMOTORS", Name: "Tata Motors", Exchange: model.NSE},
	{Symbol: "AXISBANK", Name: "Axis Bank", Exchange: model.NSE},
}

// Peers suggests alternatives to target. Industry matches come before
// sector matches; popular stocks fill the gap; the first few picks are
// then looked up on the other exchange.
func (a *Analyzer) Peers(ctx context.Context, target model.Candidate) []model.Peer {
	count := a.PeerCount
	if count <= 0 {
		count = DefaultPeerCount
	}

	var recs []model.Peer
	if known(target.Sector) || known(target.Industry) {
		recs = append(recs, a.keywordPeers(ctx, target, target.Industry)...)
		recs = append(recs, a.keywordPeers(ctx, target, target.Sector)...)
	} else {
		for _, c := range a.Collector.SearchStocks(ctx, target.Symbol, target.Exchange) {
			if c.Symbol != target.Symbol {
				recs = append(recs, peerOf(c))
			}
		}
		if len(recs) > count*2 {
			recs = recs[:count*2]
		}
	}

	if len(recs) < count {
		for _, p := range popularStocks {
			if p.Symbol != target.Symbol {
				recs = append(recs, p)
			}
		}
	}

	seen := make(map[string]bool)
	unique := make([]model.Peer, 0, len(recs))
	for _, p := range recs {
		if p.Symbol == "" || seen[p.Symbol] {
			continue
		}
		seen[p.Symbol] = true
		unique = append(unique, p)
	}

	alt := target.Exchange.Alternate()
	head := unique
	if len(head) > count {
		head = head[:count]
	}
	var equivalents []model.Peer
	for _, p := range head {
		matches := a.Collector.SearchStocks(ctx, p.Symbol, alt)
		if len(matches) == 0 {
			continue
		}
		equivalents = append(equivalents, peerOf(matches[0]))
	}
	for _, p := range equivalents {
		if !containsPeer(unique, p) {
			unique = append(unique, p)
		}
	}

	if len(unique) > count*2 {
		unique = unique[:count*2]
	}
	return unique
}

// keywordPeers searches each meaningful word of text on the target's
// exchange.
func (a *Analyzer) keywordPeers(ctx context.Context, target model.Candidate, text string) []model.Peer {
	if !known(text) {
		return nil
	}
	var out []model.Peer
	for _, kw := range strings.Fields(text) {
		if len(kw) <= 3 {
			continue
		}
		for _, c := range a.Collector.SearchStocks(ctx, kw, target.Exchange) {
			if c.Symbol == target.Symbol {
				continue
			}
			if p := peerOf(c); !containsPeer(out, p) {
				out = append(out, p)
			}
		}
	}
	return out
}

func known(s string) bool {
	return s != "" && s != "Unknown"
}

func peerOf(c model.Candidate) model.Peer {
	return model.Peer{Symbol: c.Symbol, Name: c.Name, Exchange: c.Exchange}
}

func containsPeer(peers []model.Peer, p model.Peer) bool {
	for _, q := range peers {
		if q == p {
			return true
		}
	}
	return false
}
