package wheel

import (
	"github.com/google/uuid"

	"github.com/dshills/wheelnorm/internal/event"
	"github.com/dshills/wheelnorm/internal/logging"
	"github.com/dshills/wheelnorm/internal/schedule"
)

// DefaultEventName is the native event name used when none is configured.
const DefaultEventName = "wheel"

// ListenerID identifies a listener registered on a Target.
type ListenerID uint64

// Listener receives raw wheel events from a Target.
type Listener func(RawEvent)

// Target is an input source that delivers raw wheel events.
type Target interface {
	// AddListener registers fn for events named eventName.
	AddListener(eventName string, fn Listener) ListenerID
	// RemoveListener removes a listener registered with AddListener.
	RemoveListener(eventName string, id ListenerID)
}

// Option configures an Adapter.
type Option func(*adapterOptions)

type adapterOptions struct {
	config    Config
	clock     schedule.Clock
	logger    *logging.Logger
	eventName string
}

// WithConfig sets the pipeline configuration.
func WithConfig(cfg Config) Option {
	return func(o *adapterOptions) {
		o.config = cfg
	}
}

// WithClock sets the clock used for end debouncing and rescroll throttling.
func WithClock(clock schedule.Clock) Option {
	return func(o *adapterOptions) {
		o.clock = clock
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(o *adapterOptions) {
		o.logger = logger
	}
}

// WithEventName sets the native event name to listen for,
// typically platform.WheelEventName.
func WithEventName(name string) Option {
	return func(o *adapterOptions) {
		o.eventName = name
	}
}

// Adapter normalizes the wheel events of one target and publishes gesture
// notifications.
type Adapter struct {
	id        string
	cfg       Config
	target    Target
	eventName string
	listener  ListenerID
	logger    *logging.Logger

	normalizer *Normalizer
	detector   *Detector

	// Gesture state
	wheeling bool
	disposed bool

	onStart    *event.Channel[NormalizedEvent]
	onWheel    *event.Channel[NormalizedEvent]
	onEnd      *event.Channel[NormalizedEvent]
	onRescroll *event.Channel[NormalizedEvent]

	end      *schedule.Debouncer[RawEvent]
	rescroll *schedule.Throttler[NormalizedEvent]
}

// NewAdapter creates an adapter and registers its listener on target.
func NewAdapter(target Target, opts ...Option) *Adapter {
	o := adapterOptions{
		config:    DefaultConfig(),
		eventName: DefaultEventName,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = schedule.System()
	}
	if o.logger == nil {
		o.logger = logging.Nop()
	}
	if o.eventName == "" {
		o.eventName = DefaultEventName
	}
	cfg := o.config.withDefaults()

	a := &Adapter{
		id:         uuid.NewString(),
		cfg:        cfg,
		target:     target,
		eventName:  o.eventName,
		normalizer: NewNormalizer(cfg),
	}
	a.logger = o.logger.WithComponent("wheel").WithField("adapter", a.id)
	onPanic := event.WithPanicHandler(a.subscriberPanicked)
	a.onStart = event.NewChannel[NormalizedEvent]("wheel.start", onPanic)
	a.onWheel = event.NewChannel[NormalizedEvent]("wheel", onPanic)
	a.onEnd = event.NewChannel[NormalizedEvent]("wheel.end", onPanic)
	a.onRescroll = event.NewChannel[NormalizedEvent]("wheel.rescroll", onPanic)
	if cfg.DetectRescroll {
		a.detector = NewDetector(cfg)
	}
	a.end = schedule.NewDebouncer(o.clock, cfg.EndDelay, a.finishGesture)
	a.rescroll = schedule.NewThrottler(o.clock, cfg.RescrollInterval, a.restartGesture)

	if target != nil {
		a.listener = target.AddListener(a.eventName, a.HandleEvent)
	}
	a.logger.Debug("adapter created", "event", a.eventName)
	return a
}

// ID returns the adapter's unique identifier.
func (a *Adapter) ID() string {
	return a.id
}

// Config returns the effective configuration.
func (a *Adapter) Config() Config {
	return a.cfg
}

// EventName returns the native event name the adapter listens for.
func (a *Adapter) EventName() string {
	return a.eventName
}

// OnWheelStart returns the channel notified when a gesture starts.
func (a *Adapter) OnWheelStart() *event.Channel[NormalizedEvent] {
	return a.onStart
}

// OnWheel returns the channel notified with every normalized event.
func (a *Adapter) OnWheel() *event.Channel[NormalizedEvent] {
	return a.onWheel
}

// OnWheelEnd returns the channel notified when a gesture ends.
func (a *Adapter) OnWheelEnd() *event.Channel[NormalizedEvent] {
	return a.onEnd
}

// OnRescroll returns the channel notified right before the synthetic
// end/start pair of a detected rescroll. The event carries the distance
// that triggered detection.
func (a *Adapter) OnRescroll() *event.Channel[NormalizedEvent] {
	return a.onRescroll
}

// IsWheeling reports whether a gesture is in progress.
func (a *Adapter) IsWheeling() bool {
	return a.wheeling
}

// IsDisposed reports whether Dispose has been called.
func (a *Adapter) IsDisposed() bool {
	return a.disposed
}

// NormalizerState returns a snapshot of the calibration.
func (a *Adapter) NormalizerState() NormalizerState {
	return a.normalizer.State()
}

// HandleEvent runs raw through the pipeline. It is the listener registered
// on the target. Calls after Dispose are ignored.
func (a *Adapter) HandleEvent(raw RawEvent) {
	if a.disposed {
		return
	}

	if !a.wheeling {
		a.wheeling = true
		a.logger.Debug("gesture started")
		a.onStart.Publish(boundary(raw))
		if a.disposed {
			return
		}
	}

	hadInertia := a.normalizer.HasInertia()
	ev := a.normalizer.Normalize(Extract(raw), raw)
	if !hadInertia && a.normalizer.HasInertia() {
		a.logger.Debug("inertial device detected", "shape", Classify(raw).String())
	}

	a.onWheel.Publish(ev)
	if a.disposed {
		return
	}

	if a.detector != nil && a.detector.Observe(ev) {
		a.rescroll.Call(ev)
		if a.disposed {
			return
		}
	}

	a.end.Call(raw)
}

// restartGesture emits the synthetic end/start pair of a rescroll.
// The gesture state is left unchanged.
func (a *Adapter) restartGesture(ev NormalizedEvent) {
	if a.disposed || !a.wheeling {
		return
	}
	a.logger.Debug("rescroll detected", "x", ev.Distance.X, "y", ev.Distance.Y)
	a.onRescroll.Publish(ev)
	for _, ch := range []*event.Channel[NormalizedEvent]{a.onEnd, a.onStart} {
		if a.disposed {
			return
		}
		ch.Publish(boundary(ev.Source))
	}
}

func (a *Adapter) subscriberPanicked(channel, subscriptionID string, recovered any) {
	a.logger.Error("subscriber panicked",
		"channel", channel,
		"subscription", subscriptionID,
		"panic", recovered,
	)
}

// finishGesture runs once the end debounce elapses.
func (a *Adapter) finishGesture(raw RawEvent) {
	if a.disposed || !a.wheeling {
		return
	}
	if a.detector != nil {
		a.detector.Reset()
	}
	a.wheeling = false
	a.logger.Debug("gesture ended")
	a.onEnd.Publish(boundary(raw))
}

// Reset discards calibration, detector history and gesture state. A gesture
// in progress is ended first, so OnWheelEnd fires immediately instead of
// after the quiet period.
func (a *Adapter) Reset() {
	if a.disposed {
		return
	}
	a.end.Flush()
	if a.disposed {
		return
	}
	a.end.Cancel()
	a.rescroll.Reset()
	a.normalizer.Reset()
	if a.detector != nil {
		a.detector.Reset()
	}
	a.wheeling = false
}

// Dispose removes the listener, cancels the pending end notification and
// releases the output channels. Safe to call more than once.
func (a *Adapter) Dispose() {
	if a.disposed {
		return
	}
	a.disposed = true

	if a.target != nil {
		a.target.RemoveListener(a.eventName, a.listener)
	}
	a.end.Cancel()
	a.rescroll.Reset()

	a.onStart.Dispose()
	a.onWheel.Dispose()
	a.onEnd.Dispose()
	a.onRescroll.Dispose()
	a.logger.Debug("adapter disposed")
}
