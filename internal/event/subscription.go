package event

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Subscription represents a registered handler.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// IsActive returns true if the subscription still receives values.
	IsActive() bool

	// Cancel permanently removes the subscription. Safe to call more than once.
	Cancel()
}

type subscription[T any] struct {
	id        string
	channel   *Channel[T]
	handler   Handler[T]
	cancelled atomic.Bool
}

func newSubscription[T any](c *Channel[T], fn Handler[T]) *subscription[T] {
	return &subscription[T]{
		id:      uuid.NewString(),
		channel: c,
		handler: fn,
	}
}

func (s *subscription[T]) ID() string {
	return s.id
}

func (s *subscription[T]) IsActive() bool {
	return !s.cancelled.Load()
}

func (s *subscription[T]) Cancel() {
	if s.cancelled.Swap(true) {
		return
	}
	s.channel.remove(s)
}

func (s *subscription[T]) markCancelled() {
	s.cancelled.Store(true)
}
