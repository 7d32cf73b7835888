package schedule

import "time"

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop prevents the timer from firing.
	// Returns false if the timer already fired or was stopped.
	Stop() bool
}

// Clock is the time source used by debouncers, throttlers and adapters.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc calls f once d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

// System returns a Clock backed by the time package.
// Callbacks run on a goroutine owned by the runtime timer, so callers that
// need single-threaded delivery should use NewLoopClock instead.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// LoopClock is a real-time Clock that hands expired callbacks to an event
// loop instead of running them on the timer goroutine.
type LoopClock struct {
	post func(func())
}

// NewLoopClock creates a LoopClock. post must enqueue fn for execution on
// the loop goroutine; it may be called from any goroutine.
func NewLoopClock(post func(fn func())) *LoopClock {
	return &LoopClock{post: post}
}

// Now returns the current wall time.
func (c *LoopClock) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f to be posted to the loop after d.
// A callback that was already posted when Stop is called still runs, so
// callers guard against stale callbacks themselves (Debouncer does).
func (c *LoopClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, func() {
		c.post(f)
	})
}
