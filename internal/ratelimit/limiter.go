// Package ratelimit provides an in-memory fixed-window rate limiter keyed by an
// opaque caller identifier. Callers hash identifiers before passing them in;
// the limiter never sees raw IP addresses or emails.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/allisson/rsvp/internal/clock"
)

// Result is the outcome of a single Check call.
type Result struct {
	// Allowed reports whether the request may proceed.
	Allowed bool
	// Remaining is the number of requests left in the current window.
	Remaining int
	// ResetAt is when the current window ends. Callers derive Retry-After from it.
	ResetAt time.Time
}

// window holds the counter state for one identifier.
type window struct {
	mu         sync.Mutex
	count      int
	start      time.Time
	lastAccess time.Time
}

// Limiter counts requests per identifier over a fixed window. Construct one
// instance per endpoint group at startup; groups that represent the same trust
// boundary share a single instance. State is process-local and resets on
// restart, an accepted tradeoff at this scale.
type Limiter struct {
	maxAttempts int
	window      time.Duration
	clock       clock.Clock
	disabled    bool

	mu      sync.Mutex
	windows map[string]*window
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces the system clock, for deterministic window tests.
func WithClock(c clock.Clock) Option {
	return func(l *Limiter) {
		l.clock = c
	}
}

// Disabled bypasses all counting. This is an explicit override for controlled
// environments; callers are expected to log when they construct a disabled
// limiter so the bypass is auditable.
func Disabled() Option {
	return func(l *Limiter) {
		l.disabled = true
	}
}

// New creates a Limiter allowing maxAttempts requests per identifier per window.
func New(maxAttempts int, windowDuration time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		maxAttempts: maxAttempts,
		window:      windowDuration,
		clock:       clock.New(),
		windows:     make(map[string]*window),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Check records an attempt for the identifier and returns the verdict. The
// read-increment-decide sequence is atomic per identifier: two concurrent
// requests from the same caller can never both observe the boundary-crossing
// attempt as allowed. The limiter never errors; exceeding the limit is
// reported through Result only.
func (l *Limiter) Check(identifier string) Result {
	now := l.clock.Now()

	if l.disabled {
		return Result{Allowed: true, Remaining: l.maxAttempts, ResetAt: now.Add(l.window)}
	}

	w := l.getWindow(identifier)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.lastAccess = now

	// Fresh window: first call for this identifier, or the stored window elapsed.
	if w.start.IsZero() || !now.Before(w.start.Add(l.window)) {
		w.start = now
		w.count = 1
		return Result{Allowed: true, Remaining: l.maxAttempts - 1, ResetAt: w.start.Add(l.window)}
	}

	w.count++
	resetAt := w.start.Add(l.window)

	if w.count > l.maxAttempts {
		return Result{Allowed: false, Remaining: 0, ResetAt: resetAt}
	}

	return Result{Allowed: true, Remaining: l.maxAttempts - w.count, ResetAt: resetAt}
}

// getWindow retrieves or creates the window entry for an identifier.
func (l *Limiter) getWindow(identifier string) *window {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[identifier]
	if !ok {
		w = &window{}
		l.windows[identifier] = w
	}
	return w
}

// CleanupStale periodically removes windows that elapsed and haven't been
// touched recently, preventing unbounded memory growth from identifier churn.
// Blocks until ctx is cancelled; run it in a goroutine at startup.
func (l *Limiter) CleanupStale(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.removeStale()
		}
	}
}

// removeStale deletes windows whose last access predates a full window.
func (l *Limiter) removeStale() {
	threshold := l.clock.Now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	for identifier, w := range l.windows {
		w.mu.Lock()
		stale := w.lastAccess.Before(threshold)
		w.mu.Unlock()

		if stale {
			delete(l.windows, identifier)
		}
	}
}
