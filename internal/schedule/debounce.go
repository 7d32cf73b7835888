package schedule

import (
	"sync"
	"time"
)

// Debouncer delays a callback until a quiet period has elapsed.
//
// Rapid successive calls collapse into a single invocation carrying the
// value of the last call. It is safe for concurrent use; the callback is
// never invoked while the internal lock is held.
type Debouncer[T any] struct {
	mu       sync.Mutex
	clock    Clock
	delay    time.Duration
	timer    Timer
	pending  bool
	seq      uint64 // sequence number to detect stale callbacks
	last     T
	callback func(T)
}

// NewDebouncer creates a debouncer that calls callback once no new Call
// has been made for delay.
func NewDebouncer[T any](clock Clock, delay time.Duration, callback func(T)) *Debouncer[T] {
	if clock == nil {
		clock = System()
	}
	return &Debouncer[T]{
		clock:    clock,
		delay:    delay,
		callback: callback,
	}
}

// Call (re)schedules the callback with v.
func (d *Debouncer[T]) Call(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = true
	d.last = v
	d.seq++
	currentSeq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// Only execute if this is still the current scheduled callback.
		if !d.pending || d.seq != currentSeq || d.callback == nil {
			d.mu.Unlock()
			return
		}
		d.pending = false
		d.timer = nil
		v := d.last
		d.mu.Unlock()
		d.callback(v)
	})
}

// Flush runs a pending callback immediately and cancels the scheduled one.
// Does nothing if no call is pending.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++

	if !d.pending || d.callback == nil {
		d.mu.Unlock()
		return
	}
	d.pending = false
	v := d.last
	d.mu.Unlock()
	d.callback(v)
}

// Cancel drops any pending call.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.pending = false
	var zero T
	d.last = zero
}

// Pending reports whether a call is waiting for its quiet period.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Delay returns the quiet period.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}
