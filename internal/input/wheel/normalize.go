package wheel

import "math"

// NormalizerState is a snapshot of a Normalizer's calibration.
type NormalizerState struct {
	// MinAbsDeltaX and MinAbsDeltaY are the smallest non-zero magnitudes
	// seen per axis (+Inf until the first observation).
	MinAbsDeltaX float64
	MinAbsDeltaY float64

	// FactorX and FactorY rescale deltas so the smallest tick maps to MinDelta.
	FactorX float64
	FactorY float64

	// HasInertia is set once an inertial device has been detected.
	HasInertia bool
}

func initialState() NormalizerState {
	return NormalizerState{
		MinAbsDeltaX: math.Inf(1),
		MinAbsDeltaY: math.Inf(1),
		FactorX:      1,
		FactorY:      1,
	}
}

// Normalizer rescales extracted deltas into a device-independent range.
// Each adapter owns its own Normalizer so calibrations never leak between
// independently scrolled targets.
type Normalizer struct {
	minDelta  float64
	maxFactor float64
	state     NormalizerState
}

// NewNormalizer creates a normalizer with fresh calibration.
func NewNormalizer(cfg Config) *Normalizer {
	cfg = cfg.withDefaults()
	return &Normalizer{
		minDelta:  cfg.MinDelta,
		maxFactor: cfg.MaxNonInertialDeltaFactor,
		state:     initialState(),
	}
}

// Normalize updates the calibration with d and returns the normalized event.
func (n *Normalizer) Normalize(d Deltas, source RawEvent) NormalizedEvent {
	n.observe(math.Abs(d.X), &n.state.MinAbsDeltaX, &n.state.FactorX)
	n.observe(math.Abs(d.Y), &n.state.MinAbsDeltaY, &n.state.FactorY)

	x, y := d.X, d.Y
	if n.state.HasInertia {
		x *= d.InertialFactor
		y *= d.InertialFactor
	} else {
		x *= n.state.FactorX
		y *= n.state.FactorY
	}

	return NormalizedEvent{
		Distance: Distance{X: positiveZero(x), Y: positiveZero(y)},
		Source:   source,
	}
}

// observe updates one axis. A smaller tick rebaselines the factor; a tick
// far above the baseline marks the device as inertial.
func (n *Normalizer) observe(abs float64, minAbs, factor *float64) {
	if abs == 0 || math.IsNaN(abs) {
		return
	}
	if abs < *minAbs {
		*minAbs = abs
		*factor = n.minDelta / abs
		return
	}
	if !n.state.HasInertia && abs > *minAbs*n.maxFactor {
		n.state.HasInertia = true
	}
}

// State returns a snapshot of the calibration.
func (n *Normalizer) State() NormalizerState {
	return n.state
}

// HasInertia reports whether an inertial device has been detected.
func (n *Normalizer) HasInertia() bool {
	return n.state.HasInertia
}

// Reset discards the calibration, including the inertia flag.
func (n *Normalizer) Reset() {
	n.state = initialState()
}
