package trace

import (
	"fmt"
	"time"

	"github.com/dshills/wheelnorm/internal/input/wheel"
	"github.com/dshills/wheelnorm/internal/logging"
	"github.com/dshills/wheelnorm/internal/schedule"
	"github.com/dshills/wheelnorm/internal/source"
)

// Annotator attaches a note to an emission. A non-nil error aborts the
// replay.
type Annotator func(Emission) (string, error)

// Options configures Replay.
type Options struct {
	// Config is the pipeline configuration. The zero value selects
	// wheel.DefaultConfig.
	Config wheel.Config

	// EventName is the event the adapter listens for. When empty the type
	// of the first typed record is used, falling back to "wheel".
	EventName string

	// OmitSynthetic drops the synthetic end/start pair of rescrolls.
	OmitSynthetic bool

	// Annotate is called for every emission.
	Annotate Annotator

	// Logger receives adapter logs.
	Logger *logging.Logger
}

// Replay feeds records through a fresh adapter on a manual clock and
// returns the notifications in publication order, including the final
// debounced end.
//
// Records whose type differs from the adapter's event name are delivered
// to the element but reach no listener, as in a browser.
func Replay(records []Record, opts Options) ([]Emission, error) {
	cfg := opts.Config
	if cfg == (wheel.Config{}) {
		cfg = wheel.DefaultConfig()
	}
	eventName := opts.EventName
	if eventName == "" {
		eventName = firstType(records)
	}

	start := time.Unix(0, 0).UTC()
	clock := schedule.NewManualClock(start)
	element := source.NewElement()
	adapter := wheel.NewAdapter(element,
		wheel.WithConfig(cfg),
		wheel.WithClock(clock),
		wheel.WithLogger(opts.Logger),
		wheel.WithEventName(eventName),
	)
	defer adapter.Dispose()

	r := &recorder{opts: opts}
	Observe(adapter, clock, start, r.record)

	var last time.Duration
	for i, rec := range records {
		if i > 0 && rec.Offset < last {
			return nil, fmt.Errorf("record %d: %w", i, ErrTimeOrder)
		}
		last = rec.Offset

		clock.AdvanceTo(start.Add(rec.Offset))
		raw := rec.Event
		raw.Timestamp = start.Add(rec.Offset)
		name := raw.Type
		if name == "" {
			name = eventName
		}
		element.Dispatch(name, raw)
		if r.err != nil {
			return nil, r.err
		}
	}

	// Drain the pending end notification.
	for clock.Pending() > 0 {
		clock.Advance(adapter.Config().EndDelay)
	}
	if r.err != nil {
		return nil, r.err
	}
	return r.emissions, nil
}

func firstType(records []Record) string {
	for _, rec := range records {
		if rec.Event.Type != "" {
			return rec.Event.Type
		}
	}
	return wheel.DefaultEventName
}

// Observe subscribes to the adapter's notifications and passes each one
// to fn as an emission timed by clock relative to start. The end/start
// pair following a rescroll is marked synthetic.
func Observe(a *wheel.Adapter, clock schedule.Clock, start time.Time, fn func(Emission)) {
	synthetic := 0 // boundaries still to be marked synthetic
	emit := func(kind Kind) func(wheel.NormalizedEvent) {
		return func(ev wheel.NormalizedEvent) {
			e := Emission{
				Offset:   clock.Now().Sub(start),
				Kind:     kind,
				Distance: ev.Distance,
			}
			switch kind {
			case KindRescroll:
				synthetic = 2
			case KindStart, KindEnd:
				if synthetic > 0 {
					synthetic--
					e.Synthetic = true
				}
			}
			fn(e)
		}
	}

	a.OnWheelStart().Subscribe(emit(KindStart))
	a.OnWheel().Subscribe(emit(KindWheel))
	a.OnWheelEnd().Subscribe(emit(KindEnd))
	a.OnRescroll().Subscribe(emit(KindRescroll))
}

// recorder collects emissions, applying the replay options.
type recorder struct {
	opts      Options
	emissions []Emission
	err       error
}

func (r *recorder) record(e Emission) {
	if r.err != nil {
		return
	}
	if e.Synthetic && r.opts.OmitSynthetic {
		return
	}

	if r.opts.Annotate != nil {
		note, err := r.opts.Annotate(e)
		if err != nil {
			r.err = fmt.Errorf("annotating %s at %v: %w", e.Kind, e.Offset, err)
			return
		}
		e.Annotation = note
	}
	r.emissions = append(r.emissions, e)
}
