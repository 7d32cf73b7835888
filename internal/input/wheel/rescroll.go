package wheel

import "math"

// Detector recognises a user scroll that starts while momentum from a
// previous one is still decaying.
//
// It keeps a history of absolute distances per axis and evaluates two
// patterns on every observation, x axis first:
//
//   - negative spike: the latest distance is a deep, sudden dip relative
//     to both of its predecessors (a finger landing on the trackpad).
//   - increase after decrease: the latest TrendWindow samples trend up
//     while the TrendWindow samples before them trend down.
//
// Observe reports only the rising edge of the detected condition, so a
// pattern that stays visible across consecutive samples signals once.
type Detector struct {
	cfg     Config
	x, y    *history
	latched bool
}

// NewDetector creates a detector with empty histories.
func NewDetector(cfg Config) *Detector {
	cfg = cfg.withDefaults()
	return &Detector{
		cfg: cfg,
		x:   newHistory(cfg.HistorySize),
		y:   newHistory(cfg.HistorySize),
	}
}

// Observe records ev and returns true if a rescroll starts with it.
func (d *Detector) Observe(ev NormalizedEvent) bool {
	d.x.push(math.Abs(ev.Distance.X))
	d.y.push(math.Abs(ev.Distance.Y))

	if !d.Detected() {
		d.latched = false
		return false
	}
	if d.latched {
		return false
	}
	d.latched = true
	return true
}

// Detected evaluates both patterns against the current histories.
func (d *Detector) Detected() bool {
	return d.detectAxis(d.x) || d.detectAxis(d.y)
}

// Reset clears both histories and re-arms the detector.
func (d *Detector) Reset() {
	d.x.reset()
	d.y.reset()
	d.latched = false
}

// History returns the recorded distances for axis, oldest first.
func (d *Detector) History(axis Axis) []float64 {
	switch axis {
	case AxisHorizontal:
		return d.x.values()
	case AxisVertical:
		return d.y.values()
	default:
		return nil
	}
}

func (d *Detector) detectAxis(h *history) bool {
	return d.negativeSpike(h) || d.increaseAfterDecrease(h)
}

// negativeSpike checks whether the latest sample dips sharply below the
// two samples before it.
func (d *Detector) negativeSpike(h *history) bool {
	if h.len() < 3 {
		return false
	}
	last := h.back(0)
	if last > d.cfg.SpikeCeiling {
		return false
	}
	return d.dipsBelow(h.back(1), last) && d.dipsBelow(h.back(2), last)
}

func (d *Detector) dipsBelow(prev, last float64) bool {
	// A zero last sample makes the ratio +Inf (or NaN when prev is zero
	// too, which compares false).
	return prev/last > d.cfg.SpikeRatio && prev-last > d.cfg.SpikeGap
}

// increaseAfterDecrease checks for a rising window directly after a
// falling one.
func (d *Detector) increaseAfterDecrease(h *history) bool {
	w := d.cfg.TrendWindow
	n := h.len()
	if n < 2*w {
		return false
	}
	samples := h.values()
	return DeltaDirection(samples, n-w, w) == 1 &&
		DeltaDirection(samples, n-2*w, w) == -1
}

// DeltaDirection estimates the trend of samples[start:start+length].
//
// Every ordered pair (i, j) with i < j contributes +1/(j-i) when the later
// sample is larger and -1/(j-i) when it is smaller, so neighbouring samples
// weigh more than distant ones. The result is +1 when the total is at least
// 1, -1 when it is at most -1, and 0 otherwise. The window is clipped to the
// slice bounds.
func DeltaDirection(samples []float64, start, length int) int {
	if start < 0 {
		length += start
		start = 0
	}
	end := start + length
	if end > len(samples) {
		end = len(samples)
	}

	var total float64
	for i := start; i < end; i++ {
		for j := i + 1; j < end; j++ {
			switch {
			case samples[i] < samples[j]:
				total += 1 / float64(j-i)
			case samples[i] > samples[j]:
				total -= 1 / float64(j-i)
			}
		}
	}

	switch {
	case total >= 1:
		return 1
	case total <= -1:
		return -1
	default:
		return 0
	}
}
