package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"friday/internal/model"
)

func TestYahooFetcher_FetchStockBars(t *testing.T) {
	var gotPath, gotRange string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRange = r.URL.Query().Get("range")
		w.Write([]byte(`{"chart":{"result":[{"timestamp":[1700000000,1700086400,1700086400,1700172800,1700259200],
			"indicators":{"quote":[{"open":[1,2,3,null,5],"high":[1,2,3,4,5],"low":[1,2,3,4,5],
			"close":[100,101,102,103,null],"volume":[10,20,30,null,50]}]}}],"error":null}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("", "", WithBaseURL(srv.URL), WithRateLimit(0))
	bars, err := f.FetchStockBars(context.Background(), model.Instrument{Symbol: "TCS", Exchange: model.NSE})
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/TCS.NS", gotPath)
	assert.Equal(t, "6mo", gotRange)
	// Only a missing close drops a bar; the duplicate timestamp keeps the
	// last close.
	require.Len(t, bars, 3)
	assert.Equal(t, 100.0, bars[0].Close)
	assert.Equal(t, 102.0, bars[1].Close)
	assert.Equal(t, 103.0, bars[2].Close)
	assert.Equal(t, 103.0, bars[2].Open)
	assert.Equal(t, 4.0, bars[2].High)
	assert.Zero(t, bars[2].Volume)
}

func TestYahooFetcher_ChartError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("", "1mo", WithBaseURL(srv.URL), WithRateLimit(0))
	_, err := f.FetchStockBars(context.Background(), model.Instrument{Symbol: "NOPE", Exchange: model.BSE})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}

func TestYahooFetcher_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := NewYahooFetcher("", "", WithBaseURL(srv.URL), WithRateLimit(0))
	_, err := f.FetchStockBars(context.Background(), model.Instrument{Symbol: "TCS", Exchange: model.NSE})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.Code)
}

func TestYahooFetcher_SearchStocksFiltersExchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tata motors", r.URL.Query().Get("q"))
		w.Write([]byte(`{"quotes":[
			{"symbol":"TATAMOTORS.NS","shortname":"TATA MOTORS LTD","exchange":"NSI","sector":"Consumer Cyclical"},
			{"symbol":"TATAMOTORS.BO","shortname":"TATA MOTORS LTD.","exchange":"BSE"},
			{"symbol":"TTM","shortname":"Tata Motors ADR","exchange":"NYQ"}]}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("", "", WithBaseURL(srv.URL), WithRateLimit(0))
	nse, err := f.SearchStocks(context.Background(), "tata motors", model.NSE)
	require.NoError(t, err)
	require.Len(t, nse, 1)
	assert.Equal(t, "TATAMOTORS", nse[0].Symbol)
	assert.Equal(t, "Consumer Cyclical", nse[0].Sector)
	assert.Equal(t, "Unknown", nse[0].Industry)
	assert.Equal(t, "Stock", nse[0].Type)

	bse, err := f.SearchStocks(context.Background(), "tata motors", model.BSE)
	require.NoError(t, err)
	require.Len(t, bse, 1)
	assert.Equal(t, model.BSE, bse[0].Exchange)
}

func TestMFAPIFetcher_FetchFund(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mf/119551", r.URL.Path)
		w.Write([]byte(`{"meta":{"fund_house":"Aditya Birla Sun Life Mutual Fund","scheme_type":"Open Ended Schemes",
			"scheme_code":119551,"scheme_name":"Aditya Birla Sun Life Banking & PSU Debt Fund"},
			"data":[{"date":"03-01-2024","nav":"102.5"},{"date":"02-01-2024","nav":"101.0"},
			{"date":"01-01-2024","nav":"0.0"},{"date":"bad","nav":"1"}],"status":"SUCCESS"}`))
	}))
	defer srv.Close()

	f := NewMFAPIFetcher("", WithBaseURL(srv.URL), WithRateLimit(0))
	h, err := f.FetchFund(context.Background(), "119551")
	require.NoError(t, err)

	assert.Equal(t, "Aditya Birla Sun Life Mutual Fund", h.Meta.FundHouse)
	require.Equal(t, 2, h.NAV.Len())
	assert.Equal(t, 101.0, h.NAV.Points[0].Value)
	assert.Equal(t, 102.5, h.NAV.Last().Value)
	assert.True(t, h.NAV.Points[0].Time.Before(h.NAV.Points[1].Time))
}

func TestMFAPIFetcher_FetchFundDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meta":{},"data":[]}`))
	}))
	defer srv.Close()

	f := NewMFAPIFetcher("", WithBaseURL(srv.URL), WithRateLimit(0))
	h, err := f.FetchFund(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Unknown Fund", h.Meta.SchemeName)
	assert.Equal(t, "Unknown AMC", h.Meta.FundHouse)
	assert.Equal(t, "Unknown Type", h.Meta.SchemeType)
}

func TestMFAPIFetcher_SearchFunds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mf", r.URL.Path)
		w.Write([]byte(`[
			{"schemeCode":1,"schemeName":"SBI Bluechip Fund"},
			{"schemeCode":2,"schemeName":"HDFC Top 100"},
			{"schemeCode":3,"schemeName":"SBI Small Cap"},
			{"schemeCode":4,"schemeName":"sbi magnum"},
			{"schemeCode":5,"schemeName":"SBI A"},
			{"schemeCode":6,"schemeName":"SBI B"},
			{"schemeCode":7,"schemeName":"SBI C"}]`))
	}))
	defer srv.Close()

	f := NewMFAPIFetcher("", WithBaseURL(srv.URL), WithRateLimit(0))
	res, err := f.SearchFunds(context.Background(), "SBI")
	require.NoError(t, err)
	require.Len(t, res, maxFundMatches)
	assert.Equal(t, model.FundCode("1"), res[0].Code)
	assert.Equal(t, "sbi magnum", res[2].Name)
}

func TestCleanSeries(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	in := model.Series{Points: []model.Point{
		{Time: t0.AddDate(0, 0, 2), Value: 3},
		{Time: t0, Value: 1},
		{Time: t0.AddDate(0, 0, 1), Value: 0},
		{Time: t0, Value: 1.5},
	}}
	out := CleanSeries(in)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, 1.5, out.Points[0].Value)
	assert.Equal(t, 3.0, out.Points[1].Value)
	assert.Equal(t, 4, in.Len())
}

func TestCollector_FindStockFallsBackToBSE(t *testing.T) {
	mock := &MockFetcher{Candidates: []model.Candidate{
		{Symbol: "SMALLCO", Name: "Small Co Ltd", Exchange: model.BSE},
	}}
	c := NewCollector(mock, mock)

	got, err := c.FindStock(context.Background(), "smallco", model.NSE)
	require.NoError(t, err)
	assert.Equal(t, model.BSE, got.Exchange)
	assert.Equal(t, "SMALLCO", got.Symbol)
}

func TestCollector_FindStockPrefersRequestedExchange(t *testing.T) {
	mock := &MockFetcher{Candidates: []model.Candidate{
		{Symbol: "TCS", Name: "Tata Consultancy", Exchange: model.NSE},
		{Symbol: "TCS", Name: "Tata Consultancy", Exchange: model.BSE},
	}}
	c := NewCollector(mock, mock)

	got, err := c.FindStock(context.Background(), "tcs", model.BSE)
	require.NoError(t, err)
	assert.Equal(t, model.BSE, got.Exchange)
}

func TestCollector_FindStockNotFound(t *testing.T) {
	mock := &MockFetcher{}
	c := NewCollector(mock, mock)

	_, err := c.FindStock(context.Background(), "zzzz", model.NSE)
	var ae *model.AnalysisError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "No stocks found matching 'zzzz' on NSE or BSE", ae.Message)
}

func TestCollector_SearchErrorReadsAsNoMatch(t *testing.T) {
	mock := &MockFetcher{Err: errors.New("boom")}
	c := NewCollector(mock, mock)

	assert.Empty(t, c.SearchStocks(context.Background(), "tcs", model.NSE))
	_, err := c.FindFund(context.Background(), "sbi")
	assert.EqualError(t, err, "No mutual funds found matching 'sbi'")
}

func TestCollector_StockQuoteInsufficientData(t *testing.T) {
	inst := model.Instrument{Symbol: "ONE", Exchange: model.NSE}
	mock := &MockFetcher{Bars: map[string][]model.OHLCV{
		inst.Ticker(): {{Time: time.Now(), Close: 10}},
	}}
	c := NewCollector(mock, mock)

	_, err := c.StockQuote(context.Background(), inst)
	assert.EqualError(t, err, "Insufficient data for analysis")
}

func TestCollector_StockQuoteMock(t *testing.T) {
	mock := &MockFetcher{Price: 250}
	c := NewCollector(mock, mock)

	q, err := c.StockQuote(context.Background(), model.Instrument{Symbol: "ANY", Exchange: model.NSE})
	require.NoError(t, err)
	assert.Len(t, q.Bars, 120)
	assert.InDelta(t, 250, q.Bars[60].Close, 1e-9)
}
