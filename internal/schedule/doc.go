// Package schedule provides the timing primitives used by the wheel
// pipeline: an injectable Clock, a trailing-edge Debouncer and a
// leading-edge, drop-excess Throttler.
//
// # Clocks
//
// Three clocks are provided:
//
//   - System: real time; callbacks run on their own goroutine.
//   - LoopClock: real time; callbacks are handed to a post function so
//     they run on the caller's event loop (for example a tcell poll loop).
//   - ManualClock: fake time advanced explicitly by tests and by the
//     trace replayer. Callbacks run synchronously inside Advance.
//
// # Debounce and Throttle
//
//	end := schedule.NewDebouncer(clock, 100*time.Millisecond, func(ev Event) {
//	    publishEnd(ev)
//	})
//	end.Call(ev) // reschedules; only the last call in a quiet window fires
//
//	gate := schedule.NewThrottler(clock, 50*time.Millisecond, signal)
//	gate.Call(ev) // runs at most once per interval, extra calls are dropped
//
// # Thread Safety
//
// Debouncer and Throttler are safe for concurrent use and never invoke
// their callback while holding their lock. ManualClock is safe for
// concurrent use; its callbacks run on the goroutine calling Advance.
package schedule
