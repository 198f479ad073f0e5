// Package clock provides an injectable time source so expiry and rate-limit
// window behavior can be tested deterministically.
package clock

import (
	"sync"
	"time"
)

// Clock is the source of "now" for every component that compares instants.
type Clock interface {
	Now() time.Time
}

// realClock returns the current UTC time.
type realClock struct{}

// Now returns the current time in UTC.
func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// New creates a Clock backed by the system time.
func New() Clock {
	return realClock{}
}

// Fixed is a manually controlled Clock for tests.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixed creates a Fixed clock starting at the given instant.
func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now.UTC()}
}

// Now returns the clock's current instant.
func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// Set moves the clock to the given instant.
func (f *Fixed) Set(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now.UTC()
}
