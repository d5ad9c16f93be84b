package router

import (
	"regexp"
	"strings"
	"unicode"
)

// Prefix matches text starting with any prefix and yields the trimmed
// remainder. A bare prefix without an argument matches with an empty Arg.
func Prefix(prefixes ...string) Matcher {
	return func(text string) (Match, bool) {
		for _, p := range prefixes {
			if strings.HasPrefix(text, p) {
				return Match{Arg: strings.TrimSpace(text[len(p):])}, true
			}
			if bare := strings.TrimSpace(p); bare != p && text == bare {
				return Match{}, true
			}
		}
		return Match{}, false
	}
}

// Contains matches text containing any of subs. Arg is the whole text.
func Contains(subs ...string) Matcher {
	return func(text string) (Match, bool) {
		for _, s := range subs {
			if strings.Contains(text, s) {
				return Match{Arg: text}, true
			}
		}
		return Match{}, false
	}
}

// Exact matches text equal to any of values.
func Exact(values ...string) Matcher {
	return func(text string) (Match, bool) {
		for _, v := range values {
			if text == v {
				return Match{Arg: text}, true
			}
		}
		return Match{}, false
	}
}

// Regex matches re. Arg is the first submatch when present.
func Regex(re *regexp.Regexp) Matcher {
	return func(text string) (Match, bool) {
		g := re.FindStringSubmatch(text)
		if g == nil {
			return Match{}, false
		}
		m := Match{Groups: g, Arg: text}
		if len(g) > 1 {
			m.Arg = strings.TrimSpace(g[1])
		}
		return m, true
	}
}

// Words matches when any of words appears as a whole word.
func Words(words ...string) Matcher {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return func(text string) (Match, bool) {
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
		})
		for _, f := range fields {
			if set[f] {
				return Match{Arg: text}, true
			}
		}
		return Match{}, false
	}
}

// All matches when every matcher does. The first matcher's extraction is
// kept.
func All(ms ...Matcher) Matcher {
	return func(text string) (Match, bool) {
		var first Match
		for i, m := range ms {
			got, ok := m(text)
			if !ok {
				return Match{}, false
			}
			if i == 0 {
				first = got
			}
		}
		return first, true
	}
}

// Any matches when one of ms does, returning its extraction.
func Any(ms ...Matcher) Matcher {
	return func(text string) (Match, bool) {
		for _, m := range ms {
			if got, ok := m(text); ok {
				return got, true
			}
		}
		return Match{}, false
	}
}

// Not inverts m.
func Not(m Matcher) Matcher {
	return func(text string) (Match, bool) {
		if _, ok := m(text); ok {
			return Match{}, false
		}
		return Match{Arg: text}, true
	}
}

// Func adapts a predicate.
func Func(pred func(text string) bool) Matcher {
	return func(text string) (Match, bool) {
		if pred(text) {
			return Match{Arg: text}, true
		}
		return Match{}, false
	}
}
