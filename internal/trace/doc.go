// Package trace reads recorded wheel input, replays it through a
// wheel.Adapter and writes the resulting notifications.
//
// A trace is a JSON-lines file with one browser wheel event per line:
//
//	{"t": 0, "type": "mousewheel", "wheelDeltaY": 120}
//	{"t": 16.5, "type": "mousewheel", "wheelDeltaY": 240}
//
// "t" is the offset in milliseconds from the start of the recording
// ("timeStamp" is accepted too). The remaining fields are the raw event
// fields: type, detail, axis, deltaX, deltaY, wheelDeltaX, wheelDeltaY,
// x and y. Blank lines are skipped.
//
// Replay drives the adapter with a manual clock, so the same trace always
// produces the same emissions.
package trace
