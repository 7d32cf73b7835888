package source

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/wheelnorm/internal/input/wheel"
	"github.com/dshills/wheelnorm/internal/logging"
)

// DefaultLineDelta is the pixel delta reported per wheel notch.
const DefaultLineDelta = 40

type interruptKind int

const (
	interruptWake interruptKind = iota
	interruptQuit
)

// Terminal is a wheel.Target reading mouse input from a tcell screen.
//
// Each wheel notch becomes a RawEvent of the modern delta shape with
// LineDelta pixels per notch, using the browser sign convention: wheel up
// and wheel left are negative. Listeners run on the goroutine calling Run,
// as do functions scheduled with Post.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
	target *Element
	logger *logging.Logger

	eventName string
	lineDelta float64

	onKey    func(*tcell.EventKey) bool
	onResize func(width, height int)

	queueMu sync.Mutex
	queue   []func()
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithLineDelta sets the pixel delta per notch.
func WithLineDelta(d float64) TerminalOption {
	return func(t *Terminal) {
		if d > 0 {
			t.lineDelta = d
		}
	}
}

// WithTerminalEventName sets the event name raw events are dispatched
// under. Defaults to wheel.DefaultEventName.
func WithTerminalEventName(name string) TerminalOption {
	return func(t *Terminal) {
		if name != "" {
			t.eventName = name
		}
	}
}

// WithTerminalLogger sets the logger.
func WithTerminalLogger(logger *logging.Logger) TerminalOption {
	return func(t *Terminal) {
		t.logger = logger
	}
}

// NewTerminal creates a terminal on the default tcell screen.
func NewTerminal(opts ...TerminalOption) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen, opts...), nil
}

// NewTerminalWithScreen creates a terminal on screen, which is not yet
// initialized.
func NewTerminalWithScreen(screen tcell.Screen, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		screen:    screen,
		target:    NewElement(),
		logger:    logging.Nop(),
		eventName: wheel.DefaultEventName,
		lineDelta: DefaultLineDelta,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.WithComponent("terminal")
	return t
}

// Init initializes the screen and enables mouse reporting.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	return nil
}

// Shutdown restores the terminal. A running Run loop returns.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Screen returns the underlying screen for drawing.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// EventName returns the name raw events are dispatched under.
func (t *Terminal) EventName() string {
	return t.eventName
}

// OnKey sets the key callback. Returning true marks the key as handled;
// unhandled Escape, Ctrl-C and 'q' stop Run.
func (t *Terminal) OnKey(fn func(*tcell.EventKey) bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onKey = fn
}

// OnResize sets the resize callback.
func (t *Terminal) OnResize(fn func(width, height int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onResize = fn
}

// AddListener implements wheel.Target.
func (t *Terminal) AddListener(eventName string, fn wheel.Listener) wheel.ListenerID {
	return t.target.AddListener(eventName, fn)
}

// RemoveListener implements wheel.Target.
func (t *Terminal) RemoveListener(eventName string, id wheel.ListenerID) {
	t.target.RemoveListener(eventName, id)
}

// Post schedules fn to run on the Run goroutine. It is safe to call from
// any goroutine and never blocks.
func (t *Terminal) Post(fn func()) {
	t.queueMu.Lock()
	t.queue = append(t.queue, fn)
	t.queueMu.Unlock()

	// A dropped wakeup is harmless: the queue is drained after every
	// event and a full event queue means events are pending.
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(interruptWake))
}

// Run polls the screen until a quit key, ctx cancellation or Shutdown.
// It returns ctx.Err() when cancelled and nil otherwise.
func (t *Terminal) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(interruptQuit))
	})
	defer stop()

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return ctx.Err()
		}
		quit := t.HandleEvent(ev)
		t.drain()
		if quit {
			return ctx.Err()
		}
	}
}

// HandleEvent processes one screen event and reports whether the loop
// should stop.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventMouse:
		if raw, ok := WheelEvent(e, t.lineDelta); ok {
			t.target.Dispatch(t.eventName, raw)
		}

	case *tcell.EventKey:
		t.mu.Lock()
		onKey := t.onKey
		t.mu.Unlock()
		if onKey != nil && onKey(e) {
			return false
		}
		return isQuitKey(e)

	case *tcell.EventResize:
		t.mu.Lock()
		onResize := t.onResize
		t.mu.Unlock()
		w, h := e.Size()
		if onResize != nil {
			onResize(w, h)
		}
		t.screen.Sync()

	case *tcell.EventInterrupt:
		if kind, ok := e.Data().(interruptKind); ok && kind == interruptQuit {
			return true
		}
	}
	return false
}

// drain runs the functions queued by Post.
func (t *Terminal) drain() {
	t.queueMu.Lock()
	queue := t.queue
	t.queue = nil
	t.queueMu.Unlock()

	for _, fn := range queue {
		fn()
	}
}

func isQuitKey(e *tcell.EventKey) bool {
	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return e.Rune() == 'q'
	}
	return false
}

// WheelEvent converts the wheel buttons of a mouse event into a raw event.
// It returns false when no wheel button is set.
func WheelEvent(e *tcell.EventMouse, lineDelta float64) (wheel.RawEvent, bool) {
	buttons := e.Buttons()
	var dx, dy float64
	if buttons&tcell.WheelUp != 0 {
		dy -= lineDelta
	}
	if buttons&tcell.WheelDown != 0 {
		dy += lineDelta
	}
	if buttons&tcell.WheelLeft != 0 {
		dx -= lineDelta
	}
	if buttons&tcell.WheelRight != 0 {
		dx += lineDelta
	}
	if buttons&(tcell.WheelUp|tcell.WheelDown|tcell.WheelLeft|tcell.WheelRight) == 0 {
		return wheel.RawEvent{}, false
	}

	x, y := e.Position()
	return wheel.RawEvent{
		DeltaX:    dx,
		DeltaY:    dy,
		Position:  wheel.Position{X: x, Y: y},
		Timestamp: e.When(),
	}, true
}
