// Package websearch answers general questions by querying several search
// backends in parallel and keeping the richest answer.
package websearch

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/phuslu/log"
)

// DefaultWait bounds how long Search waits for the backends.
const DefaultWait = 5 * time.Second

// NoResults is returned when no backend produced anything.
const NoResults = "I'm sorry, I couldn't find reliable information for that query. Please try rewording your question or being more specific."

var urls = regexp.MustCompile(`https?://\S+`)

// Backend is one search provider.
type Backend interface {
	Name() string
	// Source is how the provider is credited in the reply.
	Source() string
	Search(ctx context.Context, query string) (string, error)
}

// preference lists each backend with the length a result must exceed to
// be chosen outright, in priority order.
type preference struct {
	backend Backend
	minLen  int
}

// Aggregator fans a query out to its backends.
type Aggregator struct {
	prefs []preference
	Wait  time.Duration
}

// NewAggregator prefers Wikipedia, then DuckDuckGo, then Bing.
func NewAggregator(wiki, ddg, bing Backend) *Aggregator {
	return &Aggregator{
		prefs: []preference{{wiki, 50}, {ddg, 20}, {bing, 20}},
		Wait:  DefaultWait,
	}
}

type result struct {
	idx  int
	text string
}

// Search queries every backend concurrently. Backends still running when
// the wait expires are abandoned, not cancelled: they keep the caller's
// context and their late results are discarded.
func (a *Aggregator) Search(ctx context.Context, query string) string {
	start := time.Now()
	wait := a.Wait
	if wait <= 0 {
		wait = DefaultWait
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

	ch := make(chan result, len(a.prefs))
	for i, p := range a.prefs {
		go func(i int, b Backend) {
			text, err := b.Search(ctx, query)
			if err != nil {
				log.Warn().Err(err).Str("backend", b.Name()).Str("query", query).Msg("search backend failed")
			}
			ch <- result{idx: i, text: text}
		}(i, p.backend)
	}

	texts := make([]string, len(a.prefs))
collect:
	for pending := len(a.prefs); pending > 0; pending-- {
		select {
		case r := <-ch:
			texts[r.idx] = r.text
		case <-timer.C:
			break collect
		case <-ctx.Done():
			break collect
		}
	}
	elapsed := time.Since(start)
	log.Info().Str("query", query).Dur("elapsed", elapsed).Msg("web search completed")

	for i, p := range a.prefs {
		if len(texts[i]) > p.minLen {
			return format(texts[i], p.backend.Source(), elapsed)
		}
	}
	best := -1
	for i, t := range texts {
		if t != "" && (best < 0 || len(t) > len(texts[best])) {
			best = i
		}
	}
	if best >= 0 {
		return format(texts[best], a.prefs[best].backend.Source(), elapsed)
	}
	return NoResults
}

func format(text, source string, elapsed time.Duration) string {
	text = spaces.ReplaceAllString(text, " ")
	text = urls.ReplaceAllString(text, "[link]")
	text = citation.ReplaceAllString(text, "")
	return fmt.Sprintf("Web search completed in %.2f seconds.\n\nHere's what I found from %s:\n\n%s", elapsed.Seconds(), source, strings.TrimSpace(text))
}
