package wheel

import "math"

const (
	// LegacyInertialFactor amplifies legacy detail deltas on inertial
	// devices, which report tiny values during momentum.
	LegacyInertialFactor = 6.0

	// WebkitInertialFactor shrinks vendor wheel deltas on inertial devices,
	// which over-report during momentum.
	WebkitInertialFactor = 1.0 / 6.0
)

// Deltas are the unnormalized per-axis deltas of one raw event.
type Deltas struct {
	X float64
	Y float64

	// InertialFactor replaces the normalizing factors once the device is
	// known to be inertial.
	InertialFactor float64
}

// Extract reads the deltas out of raw.
//
// Shapes are applied in the order legacy detail, modern delta, vendor wheel
// delta; when an event carries several shapes the later ones overwrite the
// deltas of the earlier ones. An unknown shape yields {0, 0, 1}.
func Extract(raw RawEvent) Deltas {
	d := Deltas{InertialFactor: 1}
	shape := Classify(raw)

	if shape.Has(ShapeLegacyDetail) {
		delta := -raw.Detail
		switch raw.Axis {
		case AxisHorizontal:
			d.X = delta
		case AxisVertical:
			d.Y = delta
		}
		d.InertialFactor = LegacyInertialFactor
	}

	if shape.Has(ShapeModernDelta) {
		d.X = -finite(raw.DeltaX)
		d.Y = -finite(raw.DeltaY)
	}

	if shape.Has(ShapeWebkitWheelDelta) {
		d.X = finite(raw.WheelDeltaX)
		d.Y = finite(raw.WheelDeltaY)
		d.InertialFactor = WebkitInertialFactor
	}

	d.X = positiveZero(d.X)
	d.Y = positiveZero(d.Y)
	return d
}

// finite maps NaN to zero.
func finite(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// positiveZero turns -0 into 0.
func positiveZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
