package schedule

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttler runs a callback at most once per interval.
//
// It fires on the leading edge only: calls arriving inside the interval
// are dropped, not queued, so a burst collapses into a single invocation.
// Admission is decided against the injected Clock, which keeps it
// deterministic under a ManualClock.
type Throttler[T any] struct {
	mu       sync.Mutex
	clock    Clock
	interval time.Duration
	limiter  *rate.Limiter
	callback func(T)
}

// NewThrottler creates a throttler. A non-positive interval admits every call.
func NewThrottler[T any](clock Clock, interval time.Duration, callback func(T)) *Throttler[T] {
	if clock == nil {
		clock = System()
	}
	return &Throttler[T]{
		clock:    clock,
		interval: interval,
		limiter:  newLimiter(interval),
		callback: callback,
	}
}

func newLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Call invokes the callback with v if the interval allows it.
// Returns true if the callback ran.
func (t *Throttler[T]) Call(v T) bool {
	t.mu.Lock()
	allowed := t.limiter.AllowN(t.clock.Now(), 1)
	callback := t.callback
	t.mu.Unlock()

	if !allowed || callback == nil {
		return false
	}
	callback(v)
	return true
}

// Reset forgets the previous invocation so the next Call is admitted.
func (t *Throttler[T]) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.limiter = newLimiter(t.interval)
}

// Interval returns the minimum spacing between invocations.
func (t *Throttler[T]) Interval() time.Duration {
	return t.interval
}
