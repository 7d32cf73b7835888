// Package wheel normalizes mouse-wheel input across event shapes and
// devices.
//
// Wheel deltas differ wildly between platforms: legacy scroll events report
// a small line count in Detail, modern wheel events report pixel DeltaX and
// DeltaY, and vendor wheel events report WheelDeltaX and WheelDeltaY with
// the opposite sign. Trackpads and magic mice add hardware momentum on top,
// emitting long trains of decaying deltas after the fingers have left the
// surface.
//
// # Pipeline
//
//	RawEvent ──► Extract ──► Normalizer ──► OnWheel
//	                                │
//	                                └──► Detector ──► synthetic OnWheelEnd + OnWheelStart
//
// Extract classifies the raw event (see Shape) and pulls signed per-axis
// deltas out of it, using the "content distance moved" sign convention.
//
// Normalizer tracks the smallest non-zero magnitude seen on each axis and
// rescales deltas so that this smallest tick maps to MinDelta (50). When a
// delta more than MaxNonInertialDeltaFactor (4) times the smallest tick
// arrives, the device is considered inertial; from then on deltas are only
// multiplied by the per-shape inertial factor. Inertia is sticky for the
// lifetime of the normalizer.
//
// Detector keeps the last ten absolute distances per axis and looks for two
// patterns that pure momentum decay never produces: a sharp dip to near
// zero (a finger landing on the trackpad), and a decreasing run followed by
// an increasing run (a new swipe). Either one is reported as a rescroll.
//
// # Adapter
//
// Adapter wires a Target to the pipeline and publishes three channels:
//
//	a := wheel.NewAdapter(target, wheel.WithClock(clock))
//	defer a.Dispose()
//
//	a.OnWheelStart().Subscribe(func(ev wheel.NormalizedEvent) { ... })
//	a.OnWheel().Subscribe(func(ev wheel.NormalizedEvent) {
//	    scrollBy(ev.Distance.X, ev.Distance.Y)
//	})
//	a.OnWheelEnd().Subscribe(func(ev wheel.NormalizedEvent) { ... })
//
// Start and end events carry a zero distance. The end of a gesture is
// debounced (Config.EndDelay, 100ms by default). A detected rescroll emits
// an end immediately followed by a start, throttled to one pair per
// Config.RescrollInterval, so consumers can treat it as a new gesture.
//
// # Thread Safety
//
// Adapter is not safe for concurrent use. The target's listener and the
// clock's timer callbacks must run on one goroutine; use
// schedule.NewLoopClock or schedule.ManualClock to guarantee this.
package wheel
