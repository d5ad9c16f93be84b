// Package clock provides the time source used for greetings and time
// queries, with a settable hour override for testing.
package clock

import (
	"sync/atomic"
	"time"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

// Override wraps a base clock and can pin the hour of day.
type Override struct {
	base Clock
	hour atomic.Int32 // -1 when unset
}

// NewOverride returns an Override over base, or the system clock when
// base is nil.
func NewOverride(base Clock) *Override {
	if base == nil {
		base = System{}
	}
	o := &Override{base: base}
	o.hour.Store(-1)
	return o
}

// Now returns the base time, with the hour replaced and minutes and
// seconds zeroed while an override is active.
func (o *Override) Now() time.Time {
	now := o.base.Now()
	h := o.hour.Load()
	if h < 0 {
		return now
	}
	return time.Date(now.Year(), now.Month(), now.Day(), int(h), 0, 0, 0, now.Location())
}

// SetHour pins the hour. It reports false for hours outside 0..23.
func (o *Override) SetHour(hour int) bool {
	if hour < 0 || hour > 23 {
		return false
	}
	o.hour.Store(int32(hour))
	return true
}

// Reset returns to the base clock.
func (o *Override) Reset() { o.hour.Store(-1) }

// Active reports whether an hour is pinned.
func (o *Override) Active() bool { return o.hour.Load() >= 0 }

// Greeting returns the salutation for the hour of t.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return "Good morning!"
	case h >= 12 && h < 17:
		return "Good afternoon!"
	case h >= 17 && h < 21:
		return "Good evening!"
	default:
		return "Good night!"
	}
}
