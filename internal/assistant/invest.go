package assistant

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/phuslu/log"

	"friday/internal/model"
	"friday/internal/notifier"
	"friday/internal/router"
)

// popularStocks are suggested when the user asks about buying without
// naming a stock.
var popularStocks = []string{
	"HDFC Bank", "Reliance Industries", "TCS", "Infosys", "Tata Motors",
	"SBI", "ICICI Bank", "Adani Enterprises", "Axis Bank", "Wipro",
}

// stockAliases map everyday names to searchable company names.
var stockAliases = map[string]string{
	"hdfc":       "HDFC Bank",
	"hdfc bank":  "HDFC Bank",
	"tata":       "Tata Motors",
	"wipro":      "Wipro",
	"infosys":    "Infosys",
	"reliance":   "Reliance Industries",
	"sbi":        "State Bank of India",
	"icici":      "ICICI Bank",
	"bajaj":      "Bajaj Finance",
	"airtel":     "Bharti Airtel",
	"itc":        "ITC Limited",
	"tcs":        "Tata Consultancy Services",
	"hul":        "Hindustan Unilever",
	"l&t":        "Larsen & Toubro",
	"ongc":       "Oil and Natural Gas Corporation",
	"sun pharma": "Sun Pharmaceutical",
	"axis bank":  "Axis Bank",
	"kotak":      "Kotak Mahindra Bank",
	"mahindra":   "Mahindra & Mahindra",
	"adani":      "Adani Enterprises",
	"maruti":     "Maruti Suzuki",
	"titan":      "Titan Company",
	"nestle":     "Nestle India",
	"hindalco":   "Hindalco Industries",
	"jsw":        "JSW Steel",
}

var (
	stockInfoRe      = regexp.MustCompile(`stock information (?:for|about|on)?\s+(.*?)(?:\s+on nse|\s+on bse|$)`)
	stockInfoLooseRe = regexp.MustCompile(`stock information\s+(.*?)$`)
	exchangeSuffixRe = regexp.MustCompile(`(?:\s+on)?\s+(?:nse|bse)$`)
	onExchangeRe     = regexp.MustCompile(`(?:^|\s+)on (?:nse|bse)\b`)
	shareSuffixRe    = regexp.MustCompile(`\s+(?:shares?|stocks?)$`)
	fundSuffixRe     = regexp.MustCompile(`\s+(?:mutual\s+)?funds?$`)
)

// stockQuery matches the stock analysis commands and extracts the query
// with any trailing exchange still attached.
func stockQuery(text string) (router.Match, bool) {
	if m, ok := router.Prefix("analyze stock ", "check stock ", "stock info ")(text); ok {
		return m, true
	}
	if !strings.Contains(text, "stock information") {
		return router.Match{}, false
	}
	for _, re := range []*regexp.Regexp{stockInfoRe, stockInfoLooseRe} {
		if g := re.FindStringSubmatch(text); g != nil {
			return router.Match{Arg: strings.TrimSpace(g[1]), Groups: g}, true
		}
	}
	return router.Match{}, true
}

// splitExchange strips an " on nse" / " on bse" qualifier from query. The
// exchange defaults to NSE and is also read from the full command text.
func splitExchange(query, text string) (string, model.Exchange) {
	ex := model.NSE
	if strings.Contains(text, " on bse") {
		ex = model.BSE
	}
	return strings.TrimSpace(onExchangeRe.ReplaceAllString(query, "")), ex
}

// exchangeHint picks BSE when the command mentions it anywhere.
func exchangeHint(text string) model.Exchange {
	if strings.Contains(text, "bse") {
		return model.BSE
	}
	return model.NSE
}

// resolveAlias maps a stock reference to its company name, trying the
// whole reference first and then its first word.
func resolveAlias(name string) string {
	if full, ok := stockAliases[name]; ok {
		return full
	}
	if first, _, found := strings.Cut(name, " "); found {
		if full, ok := stockAliases[first]; ok {
			return full
		}
	}
	return name
}

// wantsFund reports whether an investment question is about a mutual fund.
func wantsFund(text, qualifier string) bool {
	if strings.Contains(qualifier, "fund") || strings.Contains(text, "mutual fund") {
		return true
	}
	_, sip := router.Words("sip")(text)
	return sip
}

func (a *Assistant) analyzeStock(ctx context.Context, m router.Match) string {
	query, ex := splitExchange(m.Arg, m.Text)
	if query == "" {
		return "Please specify a stock name or symbol to analyze."
	}
	return a.stockReport(ctx, query, ex)
}

func (a *Assistant) analyzeFund(ctx context.Context, m router.Match) string {
	if m.Arg == "" {
		return "Please specify a mutual fund name to analyze."
	}
	return a.fundReport(ctx, m.Arg)
}

func (a *Assistant) stockReport(ctx context.Context, query string, ex model.Exchange) string {
	log.Info().Str("query", query).Str("exchange", string(ex)).Msg("analyzing stock")
	res, err := a.analyzer.AnalyzeStock(ctx, query, ex)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("stock analysis failed")
		return notifier.FormatError(err)
	}
	log.Info().Str("symbol", res.Instrument.Symbol).Str("exchange", string(res.Instrument.Exchange)).Msg("stock detected")
	return notifier.FormatStockReport(res)
}

func (a *Assistant) fundReport(ctx context.Context, query string) string {
	log.Info().Str("query", query).Msg("analyzing mutual fund")
	res, err := a.analyzer.AnalyzeFund(ctx, query)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("fund analysis failed")
		return notifier.FormatFundError(err)
	}
	return notifier.FormatFundReport(res)
}

func (a *Assistant) sample(items []string, n int) []string {
	out := append([]string(nil), items...)
	swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
	if a.rand == nil {
		rand.Shuffle(len(out), swap)
	} else {
		a.randMu.Lock()
		a.rand.Shuffle(len(out), swap)
		a.randMu.Unlock()
	}
	return out[:min(n, len(out))]
}

func (a *Assistant) pick(items []string) string {
	if a.rand == nil {
		return items[rand.IntN(len(items))]
	}
	a.randMu.Lock()
	defer a.randMu.Unlock()
	return items[a.rand.IntN(len(items))]
}

func (a *Assistant) buyAdvice(context.Context, router.Match) string {
	picks := a.sample(popularStocks, 5)
	var b strings.Builder
	b.WriteString("When it comes to buying shares, it's important to research individual stocks rather than making general decisions. ")
	b.WriteString("The stock market offers opportunities, but each stock has different prospects.\n\n")
	b.WriteString("Here are 5 popular stocks you might want to analyze:\n")
	for _, s := range picks {
		b.WriteString("• " + s + "\n")
	}
	fmt.Fprintf(&b, "\nTo get my analysis on any of these, simply ask: 'Should I buy %s?'", a.pick(picks))
	return b.String()
}

func (a *Assistant) buyStock(ctx context.Context, m router.Match) string {
	name := strings.TrimSpace(strings.TrimRight(m.Arg, "?"))
	name = exchangeSuffixRe.ReplaceAllString(name, "")
	if name == "shares" || name == "stocks" {
		return a.buyAdvice(ctx, m)
	}
	name = shareSuffixRe.ReplaceAllString(name, "")

	if fundSuffixRe.MatchString(name) || wantsFund(m.Text, "") {
		if q := strings.TrimSpace(fundSuffixRe.ReplaceAllString(name, "")); len(q) > 1 {
			return a.fundReport(ctx, q)
		}
	}
	if len(name) <= 1 {
		top := popularStocks[:5]
		return fmt.Sprintf("I need to know which stock you're interested in buying. Please ask me about specific stocks like: 'Should I buy %s?'\n\nSome popular stocks you might want to consider analyzing: %s",
			a.pick(top), strings.Join(top, ", "))
	}
	return a.stockReport(ctx, resolveAlias(name), exchangeHint(m.Text))
}

func (a *Assistant) investAdvice(ctx context.Context, m router.Match) string {
	g := investRe.FindStringSubmatch(m.Text)
	if g == nil || strings.TrimSpace(g[2]) == "" {
		return fmt.Sprintf("To analyze a stock, I need the name or symbol. Please ask me about specific stocks like: 'Should I buy %s?'\n\nPopular stocks you might want to consider: %s",
			a.pick(popularStocks), strings.Join(a.sample(popularStocks, 5), ", "))
	}
	query := strings.TrimSpace(g[2])
	if wantsFund(m.Text, g[3]) {
		return a.fundReport(ctx, query)
	}
	return a.stockReport(ctx, resolveAlias(query), exchangeHint(m.Text))
}

func (a *Assistant) sipRecommendation(ctx context.Context, m router.Match) string {
	g := sipRe.FindStringSubmatch(m.Text)
	if g == nil || strings.TrimSpace(g[3]) == "" {
		return "Please specify a mutual fund name for SIP recommendation."
	}
	return a.fundReport(ctx, strings.TrimSpace(g[3]))
}
