// Package source provides input sources that deliver raw wheel events to
// a wheel.Adapter.
//
// Element is an in-memory event target: listeners are registered per event
// name and Dispatch delivers to them synchronously. Terminal reads mouse
// input from a tcell screen and dispatches wheel notches as raw events of
// the modern delta shape.
package source
