// Package router dispatches free text to the first matching rule of an
// ordered table.
package router

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/phuslu/log"
)

// Match is what a matcher extracted from the input.
type Match struct {
	// Text is the normalized input.
	Text string
	// Arg is the trailing argument, e.g. the instrument after a prefix.
	Arg string
	// Groups holds regex submatches, Groups[0] being the whole match.
	Groups []string
}

// Matcher reports whether a rule applies to the normalized text.
type Matcher func(text string) (Match, bool)

// Handler produces the reply for a matched rule.
type Handler func(ctx context.Context, m Match) string

// Rule is one row of the dispatch table.
type Rule struct {
	Name   string
	Match  Matcher
	Handle Handler
}

// FallbackRule names replies produced when no rule matched.
const FallbackRule = "fallback"

// PanicReply is returned when a handler panics.
const PanicReply = "Sorry, something went wrong while handling that request."

// Router evaluates rules top to bottom. The first match wins.
type Router struct {
	rules    []Rule
	fallback Handler
}

// New builds a router over rules. fallback answers unmatched input.
func New(rules []Rule, fallback Handler) *Router {
	return &Router{rules: append([]Rule(nil), rules...), fallback: fallback}
}

// Normalize lowercases and trims input the way matchers expect it.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Rules returns a copy of the table in evaluation order.
func (r *Router) Rules() []Rule {
	return append([]Rule(nil), r.rules...)
}

// Route finds the rule that would handle text without running it.
func (r *Router) Route(text string) (Rule, Match, bool) {
	norm := Normalize(text)
	for _, rule := range r.rules {
		if m, ok := rule.Match(norm); ok {
			m.Text = norm
			return rule, m, true
		}
	}
	return Rule{Name: FallbackRule}, Match{Text: norm}, false
}

// Dispatch runs the matching rule and returns its reply and name. A
// panicking handler is recovered and reported as an error reply.
func (r *Router) Dispatch(ctx context.Context, text string) (reply, name string) {
	rule, m, ok := r.Route(text)
	name = rule.Name

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Str("rule", name).Str("panic", fmt.Sprint(rec)).Str("stack", string(debug.Stack())).Msg("handler panicked")
			reply = PanicReply
		}
	}()

	if !ok {
		if r.fallback == nil {
			return "", name
		}
		return r.fallback(ctx, m), name
	}
	return rule.Handle(ctx, m), name
}
