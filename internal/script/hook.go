package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/wheelnorm/internal/logging"
	"github.com/dshills/wheelnorm/internal/trace"
)

// DefaultTimeout bounds a single script call.
const DefaultTimeout = time.Second

// hookNames maps emission kinds to the global each one invokes.
var hookNames = map[trace.Kind]string{
	trace.KindStart:    "on_wheel_start",
	trace.KindWheel:    "on_wheel",
	trace.KindEnd:      "on_wheel_end",
	trace.KindRescroll: "on_rescroll",
}

// HookName returns the Lua global invoked for kind.
func HookName(kind trace.Kind) string {
	return hookNames[kind]
}

// Option configures a Hook.
type Option func(*Hook)

// WithTimeout sets the time limit of loading and of each hook call.
// Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(h *Hook) {
		h.timeout = d
	}
}

// WithLogger sets the logger receiving print output.
func WithLogger(logger *logging.Logger) Option {
	return func(h *Hook) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Hook is a loaded script.
//
// gopher-lua states are not goroutine-safe; Hook serializes every call.
type Hook struct {
	mu      sync.Mutex
	L       *lua.LState
	name    string
	timeout time.Duration
	logger  *logging.Logger
	closed  bool
}

// Load reads and runs the script at path.
func Load(path string, opts ...Option) (*Hook, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading script: %w", err)
	}
	return LoadString(path, string(code), opts...)
}

// LoadString runs code as a script. name is used in error messages.
func LoadString(name, code string, opts ...Option) (*Hook, error) {
	h := &Hook{
		name:    name,
		timeout: DefaultTimeout,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.WithComponent("script").WithField("script", name)
	h.L = newState(h.logger)

	err := h.withLimit(func() error {
		fn, err := h.L.LoadString(code)
		if err != nil {
			return err
		}
		h.L.Push(fn)
		return h.L.PCall(0, lua.MultRet, nil)
	})
	if err != nil {
		h.L.Close()
		return nil, fmt.Errorf("loading script %s: %w", name, err)
	}
	return h, nil
}

// Name returns the script name.
func (h *Hook) Name() string {
	return h.name
}

// Defined returns the hook globals the script defines, in emission kind
// order.
func (h *Hook) Defined() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	var out []string
	for _, kind := range []trace.Kind{trace.KindStart, trace.KindWheel, trace.KindEnd, trace.KindRescroll} {
		if h.lookup(kind) != nil {
			out = append(out, hookNames[kind])
		}
	}
	return out
}

// Annotate calls the hook for e's kind and returns its annotation.
// A kind without a hook yields an empty annotation. Annotate satisfies
// trace.Annotator.
func (h *Hook) Annotate(e trace.Emission) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return "", ErrClosed
	}
	fn := h.lookup(e.Kind)
	if fn == nil {
		return "", nil
	}
	name := hookNames[e.Kind]

	var ret lua.LValue = lua.LNil
	err := h.withLimit(func() error {
		if err := h.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, h.table(e)); err != nil {
			return err
		}
		ret = h.L.Get(-1)
		h.L.Pop(1)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}

	switch v := ret.(type) {
	case *lua.LNilType:
		return "", nil
	case lua.LString:
		return string(v), nil
	default:
		return "", fmt.Errorf("%s: %w (got %s)", name, ErrBadReturn, ret.Type())
	}
}

// Close releases the Lua state. Safe to call more than once.
func (h *Hook) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	h.L.Close()
}

func (h *Hook) lookup(kind trace.Kind) *lua.LFunction {
	name, ok := hookNames[kind]
	if !ok {
		return nil
	}
	fn, _ := h.L.GetGlobal(name).(*lua.LFunction)
	return fn
}

func (h *Hook) table(e trace.Emission) *lua.LTable {
	t := h.L.NewTable()
	t.RawSetString("kind", lua.LString(e.Kind))
	t.RawSetString("x", lua.LNumber(e.Distance.X))
	t.RawSetString("y", lua.LNumber(e.Distance.Y))
	t.RawSetString("t", lua.LNumber(float64(e.Offset)/float64(time.Millisecond)))
	t.RawSetString("synthetic", lua.LBool(e.Synthetic))
	return t
}

// withLimit runs fn under the configured timeout and recovers VM panics.
func (h *Hook) withLimit(fn func() error) (err error) {
	if h.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()
		h.L.SetContext(ctx)
		defer h.L.RemoveContext()
		defer func() {
			if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				err = ErrTimeout
			}
		}()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}
