package event

import (
	"sync"
)

// Handler receives published values.
type Handler[T any] func(T)

// PanicHandler is called when a handler panics.
type PanicHandler func(channel string, subscriptionID string, recovered any)

// Channel is a typed, synchronous publish/subscribe primitive.
type Channel[T any] struct {
	mu       sync.Mutex
	name     string
	subs     []*subscription[T]
	disposed bool
	onPanic  PanicHandler
}

// ChannelOption configures a Channel.
type ChannelOption func(*channelConfig)

type channelConfig struct {
	onPanic PanicHandler
}

// WithPanicHandler installs a handler for recovered subscriber panics.
func WithPanicHandler(h PanicHandler) ChannelOption {
	return func(c *channelConfig) {
		c.onPanic = h
	}
}

// NewChannel creates a channel. The name is used in panic reports.
func NewChannel[T any](name string, opts ...ChannelOption) *Channel[T] {
	var cfg channelConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Channel[T]{
		name:    name,
		onPanic: cfg.onPanic,
	}
}

// Name returns the channel name.
func (c *Channel[T]) Name() string {
	return c.name
}

// Subscribe registers fn and returns its subscription.
// A nil fn or a disposed channel yields a cancelled subscription.
func (c *Channel[T]) Subscribe(fn Handler[T]) Subscription {
	sub := newSubscription(c, fn)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed || fn == nil {
		sub.markCancelled()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Publish delivers v to every active subscriber in subscription order.
func (c *Channel[T]) Publish(v T) {
	c.mu.Lock()
	if c.disposed || len(c.subs) == 0 {
		c.mu.Unlock()
		return
	}
	snapshot := make([]*subscription[T], len(c.subs))
	copy(snapshot, c.subs)
	onPanic := c.onPanic
	c.mu.Unlock()

	for _, sub := range snapshot {
		if !sub.IsActive() {
			continue
		}
		c.deliver(sub, v, onPanic)
	}
}

func (c *Channel[T]) deliver(sub *subscription[T], v T, onPanic PanicHandler) {
	defer func() {
		if r := recover(); r != nil && onPanic != nil {
			onPanic(c.name, sub.ID(), r)
		}
	}()
	sub.handler(v)
}

// Len returns the number of active subscriptions.
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// Dispose cancels every subscription and stops further delivery.
// Safe to call more than once.
func (c *Channel[T]) Dispose() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.disposed = true
	c.mu.Unlock()

	for _, sub := range subs {
		sub.markCancelled()
	}
}

// IsDisposed reports whether Dispose has been called.
func (c *Channel[T]) IsDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// remove drops sub from the subscriber list.
func (c *Channel[T]) remove(sub *subscription[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, other := range c.subs {
		if other == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			return
		}
	}
}
