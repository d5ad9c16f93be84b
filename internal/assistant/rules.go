package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"friday/internal/clock"
	"friday/internal/email"
	"friday/internal/router"
)

// Rule names, in table order.
const (
	RuleEmpty        = "empty"
	RuleTestTime     = "test_time"
	RuleStock        = "stock_analysis"
	RuleFund         = "fund_analysis"
	RuleBuyAdvice    = "buy_advice"
	RuleBuyStock     = "buy_stock"
	RuleInvestAdvice = "invest_advice"
	RuleSIP          = "sip_recommendation"
	RuleEmail        = "email"
	RuleResetTime    = "reset_time"
	RuleGreeting     = "greeting"
	RuleFarewell     = "farewell"
	RuleStatus       = "status"
	RuleTime         = "time"
	RuleDate         = "date"
	RuleName         = "name"
	RuleWebPage      = "web_page"
	RuleOpenApp      = "open_app"
	RuleCloseApp     = "close_app"
	RuleLaunchApp    = "launch_app"
	RuleHelp         = "help"
	RuleSearch       = "search"
	RuleQuestion     = "question"
)

const helpText = "I can help you with various tasks. Try asking me about:\n" +
	"- The time or date\n" +
	"- Ask who I am\n" +
	"- Say hello or goodbye\n" +
	"- Open applications with 'open [app name]'\n" +
	"- Close applications with 'close [app name]'\n" +
	"- Test time greetings with 'test time [hour]'\n" +
	"- Reset to system time with 'reset time'\n" +
	"- Ask general knowledge questions like 'Who is SRK?' or 'What is a chemical reaction?'\n" +
	"- Open web pages with 'open page [query]' or 'show me [query]'\n" +
	"- Write emails with 'write email [topic]' or 'compose email [topic]'\n" +
	"- Analyze stocks with 'analyze stock [name/symbol]' or 'stock info [name/symbol]', which now includes recommendations for similar stocks to invest in from both NSE and BSE\n" +
	"- Specify stock exchange with 'analyze stock [name] on NSE' or 'analyze stock [name] on BSE', or let me auto-detect the exchange\n" +
	"- Analyze mutual funds with 'analyze fund [name]' or 'mutual fund [name]'\n" +
	"- Get investment advice with simple English commands like 'Should I buy [stock name]' or 'Should I buy [stock name] shares'\n" +
	"- Get SIP recommendations with 'SIP recommendation for [fund name]'"

var (
	buyAdviceRe = regexp.MustCompile(`should i buy (shares|stocks)$`)
	buyStockRe  = regexp.MustCompile(`should i buy\b\s*(.*)$`)
	investRe    = regexp.MustCompile(`(should i buy|should i sell|should i invest in)\s+(.*?)(\s+stock|\s+shares|\s+fund|\s+mutual fund|\s+on nse|\s+on bse|$)`)
	sipRe       = regexp.MustCompile(`(sip|systematic investment plan)(?:.*?)\b(for|in|on)\s+([a-z0-9\s]+?)(\s+fund|\s+mutual fund|$)`)
	pageQueryRe = regexp.MustCompile(`^(can you )?(show|open|display|find)( me)?( a)?( the)?( page)?( about)?( on)?`)
)

func (a *Assistant) rules() []router.Rule {
	return []router.Rule{
		{Name: RuleEmpty, Match: router.Exact(""), Handle: reply("I didn't catch that. Could you please repeat?")},
		{Name: RuleTestTime, Match: router.Prefix("test time "), Handle: a.testTime},
		{Name: RuleStock, Match: stockQuery, Handle: a.analyzeStock},
		{Name: RuleFund, Match: router.Prefix("analyze fund ", "check fund ", "fund info ", "mutual fund "), Handle: a.analyzeFund},
		{Name: RuleBuyAdvice, Match: router.Regex(buyAdviceRe), Handle: a.buyAdvice},
		{Name: RuleBuyStock, Match: router.Regex(buyStockRe), Handle: a.buyStock},
		{Name: RuleInvestAdvice, Match: router.Contains("should i sell", "should i invest in"), Handle: a.investAdvice},
		{
			Name:   RuleSIP,
			Match:  router.All(router.Contains("sip"), router.Contains("recommend", "should i start", "advice")),
			Handle: a.sipRecommendation,
		},
		{Name: RuleEmail, Match: router.Prefix("write email ", "draft email ", "compose email "), Handle: a.writeEmail},
		{Name: RuleResetTime, Match: router.Exact("reset time"), Handle: a.resetTime},
		{Name: RuleGreeting, Match: router.Words("hello", "hi", "hey"), Handle: a.greet},
		{Name: RuleFarewell, Match: router.Any(router.Words("bye", "goodbye"), router.Exact("exit", "quit")), Handle: reply("Goodbye! Have a great day!")},
		{Name: RuleStatus, Match: router.Contains("how are you"), Handle: reply("I'm functioning perfectly! Thanks for asking.")},
		{Name: RuleTime, Match: router.All(router.Contains("time"), router.Not(router.Func(IsGeneralQuestion))), Handle: a.currentTime},
		{Name: RuleDate, Match: router.All(router.Contains("date"), router.Not(router.Func(IsGeneralQuestion))), Handle: a.currentDate},
		{Name: RuleName, Match: router.Contains("your name", "who are you"), Handle: reply("I am FRIDAY, your personal chat assistant.")},
		{Name: RuleWebPage, Match: router.Prefix("open page ", "show me "), Handle: a.openWebPage},
		{Name: RuleOpenApp, Match: router.Prefix("open "), Handle: a.openApp("open")},
		{Name: RuleCloseApp, Match: router.Prefix("close ", "exit ", "quit ", "terminate "), Handle: a.closeApp},
		{Name: RuleLaunchApp, Match: router.Prefix("launch ", "start ", "run "), Handle: a.openApp("launch")},
		{Name: RuleHelp, Match: router.Contains("help"), Handle: reply(helpText)},
		{Name: RuleSearch, Match: router.Prefix("search "), Handle: a.searchWeb},
		{Name: RuleQuestion, Match: router.Func(IsGeneralQuestion), Handle: a.answerQuestion},
	}
}

func reply(text string) router.Handler {
	return func(context.Context, router.Match) string { return text }
}

func (a *Assistant) testTime(_ context.Context, m router.Match) string {
	const usage = "Please specify a valid hour, e.g., 'test time 9' for 9 AM."
	parts := strings.Fields(m.Text)
	if len(parts) < 3 {
		return usage
	}
	hour, err := strconv.Atoi(parts[2])
	if err != nil {
		return usage
	}
	if !a.clock.SetHour(hour) {
		return "Please specify a valid hour between 0 and 23."
	}
	return fmt.Sprintf("Test mode: Time set to %d:00. %s", hour, clock.Greeting(a.clock.Now()))
}

func (a *Assistant) resetTime(context.Context, router.Match) string {
	a.clock.Reset()
	return "Reset to current system time."
}

func (a *Assistant) greet(context.Context, router.Match) string {
	return clock.Greeting(a.clock.Now()) + " How can I assist you today?"
}

func (a *Assistant) currentTime(context.Context, router.Match) string {
	return "The current time is " + a.clock.Now().Format("15:04:05")
}

func (a *Assistant) currentDate(context.Context, router.Match) string {
	return "Today's date is " + a.clock.Now().Format("2006-01-02")
}

func (a *Assistant) writeEmail(_ context.Context, m router.Match) string {
	if m.Arg == "" {
		return "Please specify a topic for the email. For example, 'write email job application'"
	}
	return email.Write(m.Arg)
}

func (a *Assistant) openWebPage(ctx context.Context, m router.Match) string {
	if m.Arg == "" {
		return "Please specify what you'd like me to search for."
	}
	return a.apps.OpenWebPage(ctx, m.Arg)
}

func (a *Assistant) openApp(verb string) router.Handler {
	return func(ctx context.Context, m router.Match) string {
		if m.Arg == "" {
			return fmt.Sprintf("Please specify which application you want me to %s.", verb)
		}
		return a.apps.Open(ctx, m.Arg)
	}
}

func (a *Assistant) closeApp(ctx context.Context, m router.Match) string {
	if m.Arg == "" {
		return "Please specify which application you want me to close."
	}
	return a.apps.Close(ctx, m.Arg)
}

func (a *Assistant) searchWeb(ctx context.Context, m router.Match) string {
	if m.Arg == "" {
		return "Please specify what you'd like me to search for."
	}
	return a.search.Search(ctx, m.Arg)
}

var pageWords = []string{"show", "open", "browser", "website", "page"}

func (a *Assistant) answerQuestion(ctx context.Context, m router.Match) string {
	for _, w := range pageWords {
		if !strings.Contains(m.Text, w) {
			continue
		}
		if q := strings.TrimSpace(pageQueryRe.ReplaceAllString(m.Text, "")); q != "" {
			return a.apps.OpenWebPage(ctx, q)
		}
		break
	}
	return a.search.Search(ctx, m.Text)
}
