// Package assistant is FRIDAY's command table: it wires the router rules
// to clock, analysis, search, app control and email handlers.
package assistant

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/phuslu/log"

	"friday/internal/clock"
	"friday/internal/model"
	"friday/internal/router"
)

// FallbackReply answers input no rule understood.
const FallbackReply = "I'm still learning to understand different queries. Could you try asking something else?"

// Analyzer runs the stock and mutual fund pipelines.
type Analyzer interface {
	AnalyzeStock(ctx context.Context, query string, preferred model.Exchange) (*model.StockAnalysis, error)
	AnalyzeFund(ctx context.Context, query string) (*model.FundAnalysis, error)
}

// Searcher answers general knowledge questions.
type Searcher interface {
	Search(ctx context.Context, query string) string
}

// AppController opens and closes applications and web pages.
type AppController interface {
	Open(ctx context.Context, name string) string
	Close(ctx context.Context, name string) string
	OpenWebPage(ctx context.Context, query string) string
}

// Assistant turns one line of user text into one reply.
type Assistant struct {
	analyzer Analyzer
	search   Searcher
	apps     AppController
	clock    *clock.Override
	// rand is nil unless WithRand is used; randMu guards it because
	// Assistants are shared across request goroutines.
	rand   *rand.Rand
	randMu sync.Mutex
	router *router.Router
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithClock sets the clock used for greetings and time queries.
func WithClock(c *clock.Override) Option {
	return func(a *Assistant) { a.clock = c }
}

// WithRand sets a seeded source for stock suggestions. Without it the
// goroutine-safe top-level math/rand/v2 functions are used.
func WithRand(r *rand.Rand) Option {
	return func(a *Assistant) { a.rand = r }
}

// New builds an assistant over its collaborators.
func New(analyzer Analyzer, search Searcher, apps AppController, opts ...Option) *Assistant {
	a := &Assistant{
		analyzer: analyzer,
		search:   search,
		apps:     apps,
		clock:    clock.NewOverride(clock.System{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.router = router.New(a.rules(), func(context.Context, router.Match) string {
		return FallbackReply
	})
	return a
}

// Process returns the reply for text.
func (a *Assistant) Process(ctx context.Context, text string) string {
	reply, _ := a.Dispatch(ctx, text)
	return reply
}

// Dispatch returns the reply for text and the name of the rule that
// produced it.
func (a *Assistant) Dispatch(ctx context.Context, text string) (string, string) {
	start := time.Now()
	reply, rule := a.router.Dispatch(ctx, text)
	log.Debug().Str("rule", rule).Dur("elapsed", time.Since(start)).Msg("command handled")
	return reply, rule
}

// Rules lists the command table in evaluation order.
func (a *Assistant) Rules() []router.Rule {
	return a.router.Rules()
}

// Clock exposes the assistant's clock.
func (a *Assistant) Clock() *clock.Override {
	return a.clock
}
