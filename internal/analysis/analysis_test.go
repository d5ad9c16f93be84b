package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"friday/internal/collector"
	"friday/internal/model"
	"friday/internal/recorder"
)

var t0 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func risingBars(n int, from, to float64) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	step := (to - from) / float64(n-1)
	for i := range bars {
		c := from + step*float64(i)
		bars[i] = model.OHLCV{Time: t0.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1}
	}
	return bars
}

func risingNAV(n int, from, step float64) model.Series {
	pts := make([]model.Point, n)
	for i := range pts {
		pts[i] = model.Point{Time: t0.AddDate(0, 0, i), Value: from + step*float64(i)}
	}
	return model.Series{Name: "nav", Points: pts}
}

type stubCharter struct {
	err   error
	calls int
}

func (s *stubCharter) StockChart(a *model.StockAnalysis, set model.IndicatorSet) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "assets/charts/" + a.Instrument.Symbol + ".pdf", nil
}

func (s *stubCharter) FundChart(a *model.FundAnalysis, set model.IndicatorSet) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "assets/charts/fund_" + string(a.Meta.Code) + ".pdf", nil
}

func newMock() *collector.MockFetcher {
	return &collector.MockFetcher{
		Candidates: []model.Candidate{
			{Symbol: "UP", Name: "Up Ltd", Exchange: model.NSE, Type: "Equity", Sector: "Unknown", Industry: "Unknown"},
		},
		Bars:  map[string][]model.OHLCV{"UP.NS": risingBars(30, 100, 130)},
		Funds: []model.FundCandidate{{Code: "100", Name: "Steady Growth Fund"}},
		Histories: map[model.FundCode]*model.FundHistory{
			"100": {
				Meta: model.FundMeta{Code: "100", SchemeName: "Steady Growth Fund - Growth", FundHouse: "Steady AMC", SchemeType: "Open Ended Schemes"},
				NAV:  risingNAV(40, 100, 1),
			},
		},
	}
}

func TestAnalyzeStock_RisingSeries(t *testing.T) {
	mock := newMock()
	charts := &stubCharter{}
	a := New(collector.NewCollector(mock, mock), charts)

	res, err := a.AnalyzeStock(context.Background(), "up", model.NSE)
	require.NoError(t, err)

	assert.Equal(t, 130.0, res.LatestPrice)
	assert.Equal(t, 30.0, res.PeriodChange)
	assert.Equal(t, model.StrongUpward, res.Trend)
	assert.Equal(t, model.MABullish, res.MASignal)
	assert.Equal(t, "Overbought - potential sell signal", res.Technical.RSISignal)
	assert.Equal(t, "Up Ltd", res.Name)
	assert.Equal(t, "assets/charts/UP.pdf", res.ChartPath)
	assert.Equal(t, 1, charts.calls)
}

func TestAnalyzeStock_ChartFailureIsIgnored(t *testing.T) {
	mock := newMock()
	a := New(collector.NewCollector(mock, mock), &stubCharter{err: errors.New("disk full")})

	res, err := a.AnalyzeStock(context.Background(), "up", model.NSE)
	require.NoError(t, err)
	assert.Empty(t, res.ChartPath)
}

func TestAnalyzeStock_NotFound(t *testing.T) {
	mock := newMock()
	a := New(collector.NewCollector(mock, mock), nil)

	_, err := a.AnalyzeStock(context.Background(), "nothing", model.NSE)
	var ae *model.AnalysisError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "No stocks found matching 'nothing' on NSE or BSE", ae.Message)
}

func TestPeriodStart_CalendarWindow(t *testing.T) {
	s := risingNAV(60, 1, 1)
	p := periodStart(s, 30)
	assert.Equal(t, t0.AddDate(0, 0, 29), p.Time)
}

func TestPeers_FillsFromPopular(t *testing.T) {
	mock := newMock()
	a := New(collector.NewCollector(mock, mock), nil)

	peers := a.Peers(context.Background(), mock.Candidates[0])
	require.Len(t, peers, 10)
	assert.Equal(t, "RELIANCE", peers[0].Symbol)
	for _, p := range peers {
		assert.NotEqual(t, "UP", p.Symbol)
	}
}

func TestPeers_ExcludesTargetAndAddsOtherExchange(t *testing.T) {
	mock := &collector.MockFetcher{Candidates: []model.Candidate{
		{Symbol: "TCS", Name: "Tata Consultancy", Exchange: model.NSE, Sector: "Technology", Industry: "Information Technology Services"},
		{Symbol: "INFY", Name: "Infosys", Exchange: model.NSE, Sector: "Technology"},
		{Symbol: "INFY", Name: "Infosys BSE", Exchange: model.BSE, Sector: "Technology"},
	}}
	a := New(collector.NewCollector(mock, mock), nil)

	peers := a.Peers(context.Background(), mock.Candidates[0])
	assert.Equal(t, model.Peer{Symbol: "INFY", Name: "Infosys", Exchange: model.NSE}, peers[0])
	assert.Contains(t, peers, model.Peer{Symbol: "INFY", Name: "Infosys BSE", Exchange: model.BSE})
	assert.LessOrEqual(t, len(peers), 10)
	for _, p := range peers {
		assert.NotEqual(t, "TCS", p.Symbol)
	}
}

func TestAnalyzeFund(t *testing.T) {
	mock := newMock()
	a := New(collector.NewCollector(mock, mock), nil)

	res, err := a.AnalyzeFund(context.Background(), "steady")
	require.NoError(t, err)

	assert.Equal(t, "Steady Growth Fund", res.Name)
	assert.Equal(t, "Steady AMC", res.Meta.FundHouse)
	assert.Equal(t, 139.0, res.LatestNAV)
	assert.Equal(t, 26.36, res.PeriodChange)
	assert.Equal(t, 30, res.PeriodDays)
	assert.Equal(t, 320.71, res.EstimatedAnnualReturn)
	assert.Equal(t, model.StrongUpward, res.Trend)
	assert.Equal(t, 10.0, res.Metrics.ConsistencyScore)
	assert.Equal(t, "Recommended for SIP investments", res.SIPRecommendation)
	assert.Greater(t, res.Metrics.SharpeRatio, 0.0)
}

func TestAnalyzeFund_ShortHistoryUsesAllObservations(t *testing.T) {
	mock := newMock()
	mock.Histories["100"].NAV = risingNAV(11, 100, 1)
	a := New(collector.NewCollector(mock, mock), nil)

	res, err := a.AnalyzeFund(context.Background(), "steady")
	require.NoError(t, err)
	assert.Equal(t, 11, res.PeriodDays)
	assert.Equal(t, 10.0, res.PeriodChange)
	assert.Equal(t, 331.82, res.EstimatedAnnualReturn)
}

func TestAnalyzeFund_NotFound(t *testing.T) {
	mock := newMock()
	a := New(collector.NewCollector(mock, mock), nil)

	_, err := a.AnalyzeFund(context.Background(), "unknown scheme")
	assert.EqualError(t, err, "No mutual funds found matching 'unknown scheme'")
}

type memoryJournal struct {
	recorder.NoopRecorder
	events []*recorder.AnalysisEvent
}

func (m *memoryJournal) RecordAnalysis(evt *recorder.AnalysisEvent) error {
	m.events = append(m.events, evt)
	return nil
}

func TestAnalyze_RecordsJournal(t *testing.T) {
	mock := newMock()
	journal := &memoryJournal{}
	a := New(collector.NewCollector(mock, mock), nil)
	a.Journal = journal

	_, err := a.AnalyzeStock(context.Background(), "up", model.NSE)
	require.NoError(t, err)
	_, err = a.AnalyzeFund(context.Background(), "steady")
	require.NoError(t, err)
	_, err = a.AnalyzeFund(context.Background(), "nothing like this")
	require.Error(t, err)

	require.Len(t, journal.events, 2)
	assert.Equal(t, recorder.KindStock, journal.events[0].Kind)
	assert.Equal(t, "UP", journal.events[0].Symbol)
	assert.Equal(t, "NSE", journal.events[0].Exchange)
	assert.Equal(t, recorder.KindFund, journal.events[1].Kind)
	assert.Equal(t, "100", journal.events[1].Symbol)
}
