package notifier

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"friday/internal/model"
)

const (
	stockChartPrefix = "📊 STOCK CHART: "
	fundChartPrefix  = "📊 MUTUAL FUND CHART: "

	stockDisclaimer = "\n⚠️ Disclaimer: This analysis is based on historical data and technical indicators. Market conditions can change rapidly, and this should not be considered as financial advice. Always do your own research before making investment decisions."
)

var chartMarker = regexp.MustCompile(`📊 (?:STOCK|MUTUAL FUND) CHART: (assets/charts/[^\s]+)\n?\n?`)

// FormatError renders an analysis failure.
func FormatError(err error) string {
	var ae *model.AnalysisError
	if errors.As(err, &ae) {
		return "Error: " + ae.Message
	}
	return "Error: " + err.Error()
}

// FormatFundError renders a mutual fund analysis failure.
func FormatFundError(err error) string {
	var ae *model.AnalysisError
	if errors.As(err, &ae) {
		return "Sorry, I couldn't analyze the mutual fund: " + ae.Message
	}
	return "Sorry, I couldn't analyze the mutual fund: " + err.Error()
}

// ExtractChart removes the chart marker from a report and returns the
// cleaned text and the chart path, empty when there is none.
func ExtractChart(text string) (string, string) {
	m := chartMarker.FindStringSubmatchIndex(text)
	if m == nil {
		return text, ""
	}
	path := text[m[2]:m[3]]
	return text[:m[0]] + text[m[1]:], path
}

// FormatStockReport renders a stock analysis as a chat reply.
func FormatStockReport(a *model.StockAnalysis) string {
	var b strings.Builder
	sig := a.Signal
	tech := a.Technical

	if a.ChartPath != "" {
		b.WriteString(stockChartPrefix + a.ChartPath + "\n\n")
	}

	direct, reason := directRecommendation(a)
	b.WriteString(direct + "\n")

	b.WriteString(fmt.Sprintf("\n📊 Stock: %s (%s)\n", a.Name, a.Instrument.Symbol))
	b.WriteString(fmt.Sprintf("Exchange: %s\n", a.Instrument.Exchange))
	b.WriteString(fmt.Sprintf("Sector: %s\n", orNA(a.Sector)))
	b.WriteString(fmt.Sprintf("Industry: %s\n", orNA(a.Industry)))
	b.WriteString(fmt.Sprintf("Current Price: ₹%.2f\n", a.LatestPrice))
	b.WriteString(fmt.Sprintf("Daily Change: %.2f%%\n", a.DailyChange))
	b.WriteString(fmt.Sprintf("Monthly Change: %.2f%%\n", a.PeriodChange))

	b.WriteString("\n📈 Technical Indicators:\n")
	if tech.RSI14.Valid {
		b.WriteString(fmt.Sprintf("RSI (14): %.2f - %s\n", tech.RSI14.Float64, rsiZone(tech.RSI14.Float64)))
	} else {
		b.WriteString("RSI (14): N/A\n")
	}
	b.WriteString(fmt.Sprintf("MACD: %s\n", orNA(tech.MACDSignal)))
	b.WriteString(fmt.Sprintf("Bollinger Bands: %s\n", orNA(tech.BollingerSignal)))
	if len(tech.MASignals) > 0 {
		b.WriteString("Moving Averages:\n")
		for _, s := range tech.MASignals {
			b.WriteString("  - " + s + "\n")
		}
	}
	b.WriteString(fmt.Sprintf("Trend: %s\n", a.Trend))
	if line := movingAverageLine(tech.MASignals); line != "" {
		b.WriteString("Moving Average Signal: " + line + "\n")
	}
	b.WriteString(fmt.Sprintf("Price vs Moving Averages: %s\n", a.MASignal))

	b.WriteString("\n💰 Price Estimates:\n")
	b.WriteString(fmt.Sprintf("Tomorrow: ₹%.2f\n", a.Estimates.Tomorrow))
	b.WriteString(fmt.Sprintf("1 Week: ₹%.2f\n", a.Estimates.OneWeek))
	b.WriteString(fmt.Sprintf("1 Month: ₹%.2f\n", a.Estimates.OneMonth))

	b.WriteString("\n🔍 Analysis Summary:\n")
	b.WriteString(fmt.Sprintf("Buy Signals: %d\n", sig.BuySignals))
	b.WriteString(fmt.Sprintf("Sell Signals: %d\n", sig.SellSignals))
	b.WriteString(fmt.Sprintf("Final Recommendation: %s\n", sig.Recommendation))
	b.WriteString(reason + "\n")
	b.WriteString(stockDisclaimer + "\n")

	writePeers(&b, a.Peers)
	return strings.TrimRight(b.String(), "\n")
}

// directRecommendation returns the opening verdict and the reasoning
// paragraph for the final recommendation.
func directRecommendation(a *model.StockAnalysis) (string, string) {
	sig := a.Signal
	ma := a.Technical.MASignals
	trend := strings.ToLower(string(a.Trend))
	price := fmt.Sprintf("₹%.2f", a.LatestPrice)

	switch sig.Recommendation {
	case model.StrongBuy, model.Buy:
		reason := fmt.Sprintf("\n💡 Why you should buy: The stock shows strong technical signals with %d buy indicators and only %d sell indicators. The stock is in a %s trend, and technical analysis suggests potential for upward movement.",
			sig.BuySignals, sig.SellSignals, trend)
		if anyContains(ma, "uptrend") {
			reason += " Moving averages indicate an uptrend which is a bullish sign."
		}
		if strings.Contains(strings.ToLower(a.Technical.MACDSignal), "bullish") {
			reason += " MACD signals bullish momentum."
		}
		if a.PeriodChange > 0 {
			reason += fmt.Sprintf(" The stock has shown positive momentum with a %.2f%% change over the last %d days.", a.PeriodChange, a.PeriodDays)
		}
		return fmt.Sprintf("✅ YES! %s looks like an excellent buying opportunity at %s!", a.Name, price), reason

	case model.WeakBuy:
		reason := fmt.Sprintf("\n💡 Why you might consider buying: The stock shows more positive signals (%d) than negative ones (%d), though the difference is not substantial. The stock is in a %s trend, but there are some mixed indicators.",
			sig.BuySignals, sig.SellSignals, trend)
		for _, s := range ma {
			switch l := strings.ToLower(s); {
			case strings.Contains(l, "uptrend"):
				reason += fmt.Sprintf(" %s, which is positive.", s)
			case strings.Contains(l, "downtrend"):
				reason += fmt.Sprintf(" However, %s, which suggests caution.", s)
			}
		}
		return fmt.Sprintf("✅ Yes, you can consider buying %s at %s, though there are some mixed signals.", a.Name, price), reason

	case model.Hold:
		reason := fmt.Sprintf("\n💡 Why it's rated as HOLD: The technical indicators are balanced with %d buy signals and %d sell signals. The stock is showing a %s trend. Consider waiting for a clearer entry point.",
			sig.BuySignals, sig.SellSignals, trend)
		return fmt.Sprintf("⚠️ %s is currently rated as HOLD at %s. If you already own it, keep it, but there may be better buying opportunities.", a.Name, price), reason

	case model.WeakSell:
		reason := fmt.Sprintf("\n❌ Why you should avoid buying now: The stock shows more negative signals (%d) than positive ones (%d). The %s trend doesn't support a buy recommendation at current levels.",
			sig.SellSignals, sig.BuySignals, trend)
		if anyContains(ma, "downtrend") {
			reason += " Moving averages indicate a downtrend which is concerning for short-term performance."
		}
		return fmt.Sprintf("❌ Not recommended to buy %s at this time. The analysis suggests it might be slightly overvalued at %s.", a.Name, price), reason

	default:
		reason := fmt.Sprintf("\n❌ Why you should NOT buy: The technical analysis shows strong negative signals with %d sell indicators compared to only %d buy indicators. The stock is in a %s trend, suggesting potential further decline.",
			sig.SellSignals, sig.BuySignals, trend)
		if anyContains(ma, "downtrend") {
			reason += " Moving averages confirm a downtrend which is a bearish sign."
		}
		if strings.Contains(strings.ToLower(a.Technical.MACDSignal), "bearish") {
			reason += " MACD signals bearish momentum."
		}
		return fmt.Sprintf("❌ NO! This is not a good time to buy %s. The analysis strongly suggests avoiding this stock at the current price of %s.", a.Name, price), reason
	}
}

// movingAverageLine summarises the short and medium term readings.
func movingAverageLine(signals []string) string {
	if len(signals) == 0 {
		return ""
	}
	up, down := anyContains(signals, "uptrend"), anyContains(signals, "downtrend")
	switch {
	case up && down:
		if strings.Contains(strings.ToLower(signals[0]), "uptrend") {
			return "Potential reversal to downside"
		}
		return "Potential reversal to upside"
	case up:
		return "Strong uptrend"
	default:
		return "Strong downtrend"
	}
}

func writePeers(b *strings.Builder, peers []model.Peer) {
	if len(peers) == 0 {
		return
	}
	var nse, bse []model.Peer
	for _, p := range peers {
		if p.Exchange == model.BSE {
			bse = append(bse, p)
		} else {
			nse = append(nse, p)
		}
	}
	b.WriteString("\n🔍 You should also check out these alternative stocks:\n")
	if len(nse) > 0 {
		b.WriteString("\n  📈 NSE Stocks You Might Like:\n")
		for i, p := range nse {
			b.WriteString(fmt.Sprintf("  %d. %s (%s)\n", i+1, p.Name, p.Symbol))
		}
	}
	if len(bse) > 0 {
		b.WriteString("\n  📈 BSE Stocks Worth Considering:\n")
		for i, p := range bse {
			b.WriteString(fmt.Sprintf("  %d. %s (%s)\n", i+1, p.Name, p.Symbol))
		}
	}
}

// FormatFundReport renders a mutual fund analysis as numbered sections.
func FormatFundReport(a *model.FundAnalysis) string {
	var b strings.Builder
	if a.ChartPath != "" {
		b.WriteString(fundChartPrefix + a.ChartPath + "\n\n")
	}

	b.WriteString("1️⃣ BASIC INFORMATION:\n")
	b.WriteString(fmt.Sprintf("• Mutual Fund: %s\n", a.Name))
	b.WriteString(fmt.Sprintf("• Fund Code: %s\n", a.Meta.Code))
	b.WriteString(fmt.Sprintf("• Fund House: %s\n", a.Meta.FundHouse))
	b.WriteString(fmt.Sprintf("• Scheme Type: %s\n", a.Meta.SchemeType))

	b.WriteString("\n2️⃣ CURRENT NAV INFORMATION:\n")
	b.WriteString(fmt.Sprintf("• Current NAV: ₹%.4f\n", a.LatestNAV))
	b.WriteString(fmt.Sprintf("• Daily Change: %.2f%%\n", a.DailyChange))
	b.WriteString(fmt.Sprintf("• Monthly Change: %.2f%%\n", a.PeriodChange))
	b.WriteString(fmt.Sprintf("• Estimated Annual Return: %.2f%%\n", a.EstimatedAnnualReturn))

	b.WriteString("\n3️⃣ PERFORMANCE METRICS:\n")
	b.WriteString(fmt.Sprintf("• Consistency Score (0-10): %.2f\n", a.Metrics.ConsistencyScore))
	b.WriteString(fmt.Sprintf("• Volatility: %.2f%%\n", a.Metrics.Volatility))
	b.WriteString(fmt.Sprintf("• Sharpe Ratio: %.2f\n", a.Metrics.SharpeRatio))

	b.WriteString("\n4️⃣ TREND ANALYSIS:\n")
	b.WriteString(fmt.Sprintf("• Trend: %s\n", a.Trend))

	b.WriteString("\n5️⃣ NAV ESTIMATES:\n")
	b.WriteString(fmt.Sprintf("• Tomorrow: ₹%.2f\n", a.Estimates.Tomorrow))
	b.WriteString(fmt.Sprintf("• 1 Week: ₹%.2f\n", a.Estimates.OneWeek))
	b.WriteString(fmt.Sprintf("• 1 Month: ₹%.2f\n", a.Estimates.OneMonth))

	b.WriteString("\n6️⃣ ANALYSIS SUMMARY & RECOMMENDATIONS:\n")
	b.WriteString(fmt.Sprintf("• SIP Recommendation: %s\n", a.SIPRecommendation))
	b.WriteString(fmt.Sprintf("• General Recommendation: %s\n", a.Advice))

	b.WriteString("\n7️⃣ DISCLAIMER:\n")
	b.WriteString("• This analysis is based on historical NAV data.\n")
	b.WriteString("• Market conditions can change rapidly.\n")
	b.WriteString("• This should not be considered as financial advice.\n")
	b.WriteString("• Always do your own research before making investment decisions.")
	return b.String()
}

func rsiZone(rsi float64) string {
	switch {
	case rsi > 70:
		return "Overbought"
	case rsi < 30:
		return "Oversold"
	default:
		return "Neutral"
	}
}

func anyContains(items []string, sub string) bool {
	for _, s := range items {
		if strings.Contains(strings.ToLower(s), sub) {
			return true
		}
	}
	return false
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
