package source

import (
	"sync"

	"github.com/dshills/wheelnorm/internal/input/wheel"
)

type listener struct {
	id wheel.ListenerID
	fn wheel.Listener
}

// Element is an in-memory wheel.Target.
type Element struct {
	mu        sync.Mutex
	listeners map[string][]listener
	nextID    wheel.ListenerID
}

// NewElement creates an element without listeners.
func NewElement() *Element {
	return &Element{
		listeners: make(map[string][]listener),
	}
}

// AddListener registers fn for events named eventName.
func (e *Element) AddListener(eventName string, fn wheel.Listener) wheel.ListenerID {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	e.listeners[eventName] = append(e.listeners[eventName], listener{id: e.nextID, fn: fn})
	return e.nextID
}

// RemoveListener unregisters a listener. Unknown IDs are ignored.
func (e *Element) RemoveListener(eventName string, id wheel.ListenerID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	list := e.listeners[eventName]
	for i, l := range list {
		if l.id == id {
			e.listeners[eventName] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(e.listeners[eventName]) == 0 {
		delete(e.listeners, eventName)
	}
}

// Dispatch delivers raw to the listeners of eventName in registration
// order and returns how many were called. raw.Type is set to eventName
// when empty. Listeners added or removed during dispatch take effect for
// the next event.
func (e *Element) Dispatch(eventName string, raw wheel.RawEvent) int {
	e.mu.Lock()
	list := make([]listener, len(e.listeners[eventName]))
	copy(list, e.listeners[eventName])
	e.mu.Unlock()

	if raw.Type == "" {
		raw.Type = eventName
	}
	for _, l := range list {
		l.fn(raw)
	}
	return len(list)
}

// ListenerCount returns the number of listeners for eventName.
func (e *Element) ListenerCount(eventName string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[eventName])
}
