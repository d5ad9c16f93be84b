package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phuslu/log"

	"friday/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// It implements both StockSource and FundSource.
type MockFetcher struct {
	Price      float64
	Candidates []model.Candidate
	Bars       map[string][]model.OHLCV // keyed by ticker, e.g. "TCS.NS"
	Funds      []model.FundCandidate
	Histories  map[model.FundCode]*model.FundHistory
	Err        error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) SearchStocks(_ context.Context, query string, exchange model.Exchange) ([]model.Candidate, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	q := strings.ToLower(query)
	var out []model.Candidate
	for _, c := range m.Candidates {
		if c.Exchange != exchange {
			continue
		}
		if strings.Contains(strings.ToLower(c.Symbol), q) || strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Sector), q) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockFetcher) FetchStockBars(_ context.Context, inst model.Instrument) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if bars, ok := m.Bars[inst.Ticker()]; ok {
		return bars, nil
	}
	return generateMockBars(m.Price, 120), nil
}

func (m *MockFetcher) SearchFunds(_ context.Context, query string) ([]model.FundCandidate, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	q := strings.ToLower(query)
	var out []model.FundCandidate
	for _, f := range m.Funds {
		if strings.Contains(strings.ToLower(f.Name), q) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *MockFetcher) FetchFund(_ context.Context, code model.FundCode) (*model.FundHistory, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if h, ok := m.Histories[code]; ok {
		return h, nil
	}
	bars := generateMockBars(m.Price, 120)
	return &model.FundHistory{
		Meta: model.FundMeta{Code: code, SchemeName: "Mock Fund", FundHouse: "Mock AMC", SchemeType: "Open Ended Schemes"},
		NAV:  model.CloseSeries(string(code), bars),
	}, nil
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	if basePrice <= 0 {
		basePrice = 100
	}
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector resolves queries to instruments and fetches cleaned history.
type Collector struct {
	Stocks StockSource
	Funds  FundSource
}

// NewCollector creates a new Collector.
func NewCollector(stocks StockSource, funds FundSource) *Collector {
	return &Collector{Stocks: stocks, Funds: funds}
}

// SearchStocks returns matches on exchange. Provider failures are logged
// and read as no matches.
func (c *Collector) SearchStocks(ctx context.Context, query string, exchange model.Exchange) []model.Candidate {
	res, err := c.Stocks.SearchStocks(ctx, query, exchange)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Str("exchange", string(exchange)).Msg("stock search failed")
		return nil
	}
	return res
}

// FindStock searches the preferred exchange and falls back to the other
// one. The first match wins.
func (c *Collector) FindStock(ctx context.Context, query string, preferred model.Exchange) (model.Candidate, error) {
	for _, ex := range []model.Exchange{preferred, preferred.Alternate()} {
		if res := c.SearchStocks(ctx, query, ex); len(res) > 0 {
			log.Info().Str("query", query).Str("symbol", res[0].Symbol).Str("exchange", string(ex)).Msg("stock resolved")
			return res[0], nil
		}
	}
	return model.Candidate{}, model.NewAnalysisError(fmt.Sprintf("No stocks found matching '%s' on NSE or BSE", query))
}

// StockQuote fetches cleaned bars for an instrument.
func (c *Collector) StockQuote(ctx context.Context, inst model.Instrument) (*model.StockQuote, error) {
	bars, err := c.Stocks.FetchStockBars(ctx, inst)
	if err != nil {
		log.Error().Err(err).Str("ticker", inst.Ticker()).Msg("fetch stock data")
		return nil, model.NewAnalysisError(fmt.Sprintf("Failed to fetch stock data: %v", err))
	}
	bars = CleanBars(bars)
	if len(bars) < 2 {
		return nil, model.NewAnalysisError("Insufficient data for analysis")
	}
	return &model.StockQuote{Instrument: inst, Bars: bars, FetchedAt: time.Now()}, nil
}

// FindFund returns the first scheme whose name contains query.
func (c *Collector) FindFund(ctx context.Context, query string) (model.FundCandidate, error) {
	res, err := c.Funds.SearchFunds(ctx, query)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("fund search failed")
	}
	if len(res) == 0 {
		return model.FundCandidate{}, model.NewAnalysisError(fmt.Sprintf("No mutual funds found matching '%s'", query))
	}
	return res[0], nil
}

// FundHistory fetches a cleaned NAV history.
func (c *Collector) FundHistory(ctx context.Context, code model.FundCode) (*model.FundHistory, error) {
	h, err := c.Funds.FetchFund(ctx, code)
	if err != nil {
		log.Error().Err(err).Str("fund", string(code)).Msg("fetch mutual fund data")
		return nil, model.NewAnalysisError(fmt.Sprintf("Failed to fetch mutual fund data: %v", err))
	}
	out := *h
	out.NAV = CleanSeries(h.NAV)
	if out.NAV.Len() < 2 {
		return nil, model.NewAnalysisError("Insufficient NAV data for analysis")
	}
	return &out, nil
}
