package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"friday/internal/model"
)

func strongBuyFixture() *model.StockAnalysis {
	return &model.StockAnalysis{
		Instrument:   model.Instrument{Symbol: "TCS", Exchange: model.NSE},
		Name:         "Tata Consultancy Services",
		Sector:       "Technology",
		Industry:     "Information Technology Services",
		LatestPrice:  3500,
		DailyChange:  1.25,
		PeriodChange: 8.4,
		PeriodDays:   30,
		Trend:        model.StrongUpward,
		MASignal:     model.MABullish,
		Technical: model.TechnicalSignals{
			RSI14:           null.FloatFrom(28.5),
			RSISignal:       "Oversold - potential buy signal",
			MACDSignal:      "Bullish - MACD above signal line",
			BollingerSignal: "Price below lower Bollinger Band - potential buy signal",
			MASignals:       []string{"Short-term uptrend (SMA5 > SMA20)", "Medium-term uptrend (SMA20 > SMA50)"},
		},
		Signal:    model.TradeSignal{BuySignals: 5, Score: 5, Recommendation: model.StrongBuy},
		Estimates: model.Estimates{Tomorrow: 3543.75, OneWeek: 3568.6, OneMonth: 3794},
		Peers: []model.Peer{
			{Symbol: "INFY", Name: "Infosys", Exchange: model.NSE},
			{Symbol: "WIPRO", Name: "Wipro", Exchange: model.NSE},
			{Symbol: "INFY", Name: "Infosys", Exchange: model.BSE},
		},
	}
}

func TestFormatStockReport_StrongBuy(t *testing.T) {
	out := FormatStockReport(strongBuyFixture())

	assert.True(t, strings.HasPrefix(out, "✅ YES! Tata Consultancy Services looks like an excellent buying opportunity at ₹3500.00!"))
	assert.Contains(t, out, "📊 Stock: Tata Consultancy Services (TCS)")
	assert.Contains(t, out, "Final Recommendation: Strong Buy")
	assert.Contains(t, out, "RSI (14): 28.50 - Oversold")
	assert.Contains(t, out, "Moving Average Signal: Strong uptrend")
	assert.Contains(t, out, "Monthly Change: 8.40%")
	assert.Contains(t, out, "MACD signals bullish momentum.")
	assert.Contains(t, out, "8.40% change over the last 30 days.")
	assert.Contains(t, out, "⚠️ Disclaimer:")
	assert.NotContains(t, out, "STOCK CHART")

	nse := strings.Index(out, "NSE Stocks You Might Like")
	bse := strings.Index(out, "BSE Stocks Worth Considering")
	require.Positive(t, nse)
	assert.Greater(t, bse, nse)
	assert.Contains(t, out, "  2. Wipro (WIPRO)")
}

func TestFormatStockReport_SectionOrder(t *testing.T) {
	out := FormatStockReport(strongBuyFixture())
	sections := []string{"📊 Stock:", "📈 Technical Indicators:", "💰 Price Estimates:", "🔍 Analysis Summary:", "💡 Why you should buy", "⚠️ Disclaimer", "alternative stocks"}
	last := -1
	for _, s := range sections {
		i := strings.Index(out, s)
		require.Greater(t, i, last, s)
		last = i
	}
}

func TestFormatStockReport_Verdicts(t *testing.T) {
	cases := []struct {
		rec    model.Recommendation
		prefix string
	}{
		{model.WeakBuy, "✅ Yes, you can consider buying"},
		{model.Hold, "⚠️ Tata Consultancy Services is currently rated as HOLD"},
		{model.WeakSell, "❌ Not recommended to buy"},
		{model.Sell, "❌ NO! This is not a good time to buy"},
		{model.StrongSell, "❌ NO! This is not a good time to buy"},
	}
	for _, tc := range cases {
		t.Run(string(tc.rec), func(t *testing.T) {
			a := strongBuyFixture()
			a.Signal.Recommendation = tc.rec
			assert.True(t, strings.HasPrefix(FormatStockReport(a), tc.prefix))
		})
	}
}

func TestFormatStockReport_ChartMarker(t *testing.T) {
	a := strongBuyFixture()
	a.ChartPath = "assets/charts/TCS_NSE_20240101_120000.pdf"
	out := FormatStockReport(a)
	assert.True(t, strings.HasPrefix(out, "📊 STOCK CHART: assets/charts/TCS_NSE_20240101_120000.pdf\n\n✅ YES!"))

	clean, path := ExtractChart(out)
	assert.Equal(t, a.ChartPath, path)
	assert.True(t, strings.HasPrefix(clean, "✅ YES!"))
}

func TestExtractChart_NoMarker(t *testing.T) {
	clean, path := ExtractChart("hello")
	assert.Equal(t, "hello", clean)
	assert.Empty(t, path)
}

func TestFormatFundReport(t *testing.T) {
	a := &model.FundAnalysis{
		Meta:                  model.FundMeta{Code: "119551", FundHouse: "Aditya Birla Sun Life Mutual Fund", SchemeType: "Open Ended Schemes"},
		Name:                  "Aditya Birla Sun Life Banking & PSU Debt Fund",
		LatestNAV:             320.1234,
		DailyChange:           0.05,
		PeriodChange:          0.8,
		EstimatedAnnualReturn: 9.73,
		Trend:                 model.Sideways,
		Advice:                "Hold SIP investments. Monitor performance in coming weeks.",
		Metrics:               model.FundMetrics{ConsistencyScore: 9, Volatility: 0.12, SharpeRatio: 1.5},
		SIPRecommendation:     "Suitable for SIP investments with regular monitoring",
		ChartPath:             "assets/charts/fund_119551_20240101_120000.pdf",
	}
	out := FormatFundReport(a)

	assert.True(t, strings.HasPrefix(out, "📊 MUTUAL FUND CHART: assets/charts/fund_119551_20240101_120000.pdf\n\n1️⃣ BASIC INFORMATION:"))
	for _, s := range []string{"2️⃣ CURRENT NAV INFORMATION:", "3️⃣ PERFORMANCE METRICS:", "4️⃣ TREND ANALYSIS:", "5️⃣ NAV ESTIMATES:", "6️⃣ ANALYSIS SUMMARY & RECOMMENDATIONS:", "7️⃣ DISCLAIMER:"} {
		assert.Contains(t, out, s)
	}
	assert.Contains(t, out, "• Fund Code: 119551")
	assert.Contains(t, out, "• Consistency Score (0-10): 9.00")
	assert.Contains(t, out, "• SIP Recommendation: Suitable for SIP investments with regular monitoring")
	assert.Contains(t, out, "• General Recommendation: Hold SIP investments.")
}

func TestFormatErrors(t *testing.T) {
	err := model.NewAnalysisError("Insufficient data for analysis")
	assert.Equal(t, "Error: Insufficient data for analysis", FormatError(err))
	assert.Equal(t, "Sorry, I couldn't analyze the mutual fund: Insufficient data for analysis", FormatFundError(err))
	assert.Equal(t, "Error: boom", FormatError(errors.New("boom")))
}

func TestTelegram_SendPostsToChat(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "", "")
	tn.APIBase = srv.URL
	require.NoError(t, tn.Send(context.Background(), "42", "hi"))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "hi", got["text"])
}

func TestTelegram_SendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "", "")
	tn.APIBase = srv.URL
	assert.Error(t, tn.Send(context.Background(), "42", "hi"))
}

func TestTelegram_HandleUpdateRepliesToSender(t *testing.T) {
	var chat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		chat = body["chat_id"]
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "", "")
	tn.APIBase = srv.URL

	var u telegramUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"update_id":1,"message":{"text":" hello ","chat":{"id":7}}}`), &u))
	var seen string
	tn.handleUpdate(context.Background(), u, func(_ context.Context, text string) string {
		seen = text
		return "Good morning!"
	})
	assert.Equal(t, "hello", seen)
	assert.Equal(t, "7", chat)
}

func TestTelegram_HandleUpdateIgnoresOtherChats(t *testing.T) {
	tn := NewTelegramNotifier("TOKEN", "1", "")
	var u telegramUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"update_id":1,"message":{"text":"hi","chat":{"id":2}}}`), &u))
	called := false
	tn.handleUpdate(context.Background(), u, func(context.Context, string) string {
		called = true
		return ""
	})
	assert.False(t, called)
}
