package collector

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"friday/internal/model"
)

// DefaultYahooURL is the Yahoo Finance query host.
const DefaultYahooURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements StockSource using Yahoo Finance public APIs.
type YahooFetcher struct {
	httpSource
	// Range is the chart history requested, e.g. "1mo" or "6mo".
	Range string
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL, chartRange string, opts ...Option) *YahooFetcher {
	if chartRange == "" {
		chartRange = "6mo"
	}
	return &YahooFetcher{
		httpSource: newHTTPSource(DefaultYahooURL, proxyURL, opts...),
		Range:      chartRange,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// yahooSearch is the response structure from the Yahoo search API.
type yahooSearch struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		Exchange  string `json:"exchange"`
		QuoteType string `json:"quoteType"`
		TypeDisp  string `json:"typeDisp"`
		Sector    string `json:"sector"`
		Industry  string `json:"industry"`
	} `json:"quotes"`
}

// toFloat reads a nullable JSON number; ok is false for null.
func toFloat(vals []interface{}, i int) (float64, bool) {
	if i >= len(vals) || vals[i] == nil {
		return 0, false
	}
	switch n := vals[i].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func (f *YahooFetcher) FetchStockBars(ctx context.Context, inst model.Instrument) ([]model.OHLCV, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d",
		f.baseURL, url.PathEscape(inst.Ticker()), url.QueryEscape(f.Range))

	var chart yahooChart
	if err := f.getJSON(ctx, u, &chart); err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", inst.Ticker(), err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		c, ok := toFloat(quote.Close, i)
		if !ok {
			continue // holidays and halted sessions have no close
		}
		bar := model.OHLCV{Time: time.Unix(ts, 0), Open: c, High: c, Low: c, Close: c}
		if v, ok := toFloat(quote.Open, i); ok {
			bar.Open = v
		}
		if v, ok := toFloat(quote.High, i); ok {
			bar.High = v
		}
		if v, ok := toFloat(quote.Low, i); ok {
			bar.Low = v
		}
		if v, ok := toFloat(quote.Volume, i); ok {
			bar.Volume = v
		}
		bars = append(bars, bar)
	}
	return CleanBars(bars), nil
}

// SearchStocks queries Yahoo search and keeps quotes listed on exchange.
func (f *YahooFetcher) SearchStocks(ctx context.Context, query string, exchange model.Exchange) ([]model.Candidate, error) {
	u := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=15&newsCount=0", f.baseURL, url.QueryEscape(query))

	var res yahooSearch
	if err := f.getJSON(ctx, u, &res); err != nil {
		return nil, fmt.Errorf("yahoo search %q: %w", query, err)
	}

	var out []model.Candidate
	for _, q := range res.Quotes {
		ex, ok := quoteExchange(q.Exchange, q.Symbol)
		if !ok || ex != exchange {
			continue
		}
		name := q.ShortName
		if name == "" {
			name = q.LongName
		}
		if name == "" {
			name = "Unknown"
		}
		out = append(out, model.Candidate{
			Symbol:   baseSymbol(q.Symbol),
			Name:     name,
			Exchange: ex,
			Type:     orDefault(q.TypeDisp, "Stock"),
			Sector:   orDefault(q.Sector, "Unknown"),
			Industry: orDefault(q.Industry, "Unknown"),
		})
	}
	return out, nil
}

// quoteExchange detects NSE/BSE listings from the exchange code or suffix.
func quoteExchange(code, symbol string) (model.Exchange, bool) {
	switch {
	case code == "NSI" || strings.Contains(symbol, ".NS"):
		return model.NSE, true
	case code == "BSE" || strings.Contains(symbol, ".BO"):
		return model.BSE, true
	}
	return "", false
}

// baseSymbol strips the exchange suffix, "TCS.NS" -> "TCS".
func baseSymbol(symbol string) string {
	if i := strings.Index(symbol, "."); i > 0 {
		return symbol[:i]
	}
	return symbol
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
