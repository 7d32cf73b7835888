package wheel

import (
	"math"
	"strings"
	"time"
)

// Axis identifies the scroll axis of a legacy detail event.
// The values match the HORIZONTAL_AXIS and VERTICAL_AXIS constants of the
// legacy scroll event.
type Axis uint8

const (
	// AxisNone means the event carries no axis.
	AxisNone Axis = iota
	// AxisHorizontal is the horizontal scroll axis.
	AxisHorizontal
	// AxisVertical is the vertical scroll axis.
	AxisVertical
)

// String returns a string representation of the axis.
func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "none"
	}
}

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// RawEvent is a wheel-like input event as delivered by an input source.
// A zero field means the field is absent.
type RawEvent struct {
	// Type is the native event name ("wheel", "mousewheel", ...).
	Type string

	// Detail and Axis form the legacy scroll-wheel shape.
	Detail float64
	Axis   Axis

	// DeltaX and DeltaY form the modern wheel shape.
	DeltaX float64
	DeltaY float64

	// WheelDeltaX and WheelDeltaY form the vendor wheel shape.
	WheelDeltaX float64
	WheelDeltaY float64

	// Position is where the event occurred, if known.
	Position Position

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Shape is the set of delta shapes present on a RawEvent.
type Shape uint8

// ShapeUnknown is the empty set: the event carries no recognised deltas.
const ShapeUnknown Shape = 0

const (
	// ShapeLegacyDetail is the Detail+Axis shape.
	ShapeLegacyDetail Shape = 1 << iota
	// ShapeModernDelta is the DeltaX/DeltaY shape.
	ShapeModernDelta
	// ShapeWebkitWheelDelta is the WheelDeltaX/WheelDeltaY shape.
	ShapeWebkitWheelDelta
)

// Has reports whether s contains every shape in other.
func (s Shape) Has(other Shape) bool {
	return other != ShapeUnknown && s&other == other
}

// String returns the shapes joined by "|", or "unknown".
func (s Shape) String() string {
	if s == ShapeUnknown {
		return "unknown"
	}
	var parts []string
	if s.Has(ShapeLegacyDetail) {
		parts = append(parts, "legacy-detail")
	}
	if s.Has(ShapeModernDelta) {
		parts = append(parts, "modern-delta")
	}
	if s.Has(ShapeWebkitWheelDelta) {
		parts = append(parts, "webkit-wheel-delta")
	}
	return strings.Join(parts, "|")
}

// Classify returns the set of shapes raw carries.
func Classify(raw RawEvent) Shape {
	shape := ShapeUnknown
	if present(raw.Detail) {
		shape |= ShapeLegacyDetail
	}
	if present(raw.DeltaX) || present(raw.DeltaY) {
		shape |= ShapeModernDelta
	}
	if present(raw.WheelDeltaX) || present(raw.WheelDeltaY) {
		shape |= ShapeWebkitWheelDelta
	}
	return shape
}

// present treats zero and NaN as absent.
func present(v float64) bool {
	return v != 0 && !math.IsNaN(v)
}

// Distance is a per-axis scroll distance.
type Distance struct {
	X float64
	Y float64
}

// IsZero returns true if both axes are zero.
func (d Distance) IsZero() bool {
	return d.X == 0 && d.Y == 0
}

// NormalizedEvent is the output of the pipeline.
type NormalizedEvent struct {
	// Distance is the normalized content distance.
	Distance Distance

	// Source is the raw event the distance was derived from.
	Source RawEvent
}

// boundary returns the zero-distance event used for start and end notifications.
func boundary(source RawEvent) NormalizedEvent {
	return NormalizedEvent{Source: source}
}
