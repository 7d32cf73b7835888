package wheel

import "time"

// Config configures the wheel pipeline.
type Config struct {
	// MinDelta is the normalized magnitude of the smallest observed tick.
	MinDelta float64

	// MaxNonInertialDeltaFactor is how many times larger than the smallest
	// tick a delta may be before the device is considered inertial.
	MaxNonInertialDeltaFactor float64

	// EndDelay is the quiet period after which a gesture ends.
	EndDelay time.Duration

	// DetectRescroll enables the rescroll detector.
	DetectRescroll bool

	// RescrollInterval is the minimum spacing between rescroll signals.
	RescrollInterval time.Duration

	// HistorySize is the number of samples kept per axis.
	// Must be at least 2*TrendWindow and at least 3.
	HistorySize int

	// TrendWindow is the number of samples per trend window.
	TrendWindow int

	// SpikeCeiling is the largest distance that counts as a dip.
	SpikeCeiling float64

	// SpikeRatio is how many times larger than the dip each predecessor must be.
	SpikeRatio float64

	// SpikeGap is how much larger than the dip each predecessor must be.
	SpikeGap float64
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		MinDelta:                  50,
		MaxNonInertialDeltaFactor: 4,
		EndDelay:                  100 * time.Millisecond,
		DetectRescroll:            true,
		RescrollInterval:          50 * time.Millisecond,
		HistorySize:               10,
		TrendWindow:               5,
		SpikeCeiling:              5,
		SpikeRatio:                2,
		SpikeGap:                  2,
	}
}

// withDefaults replaces unusable values with their defaults.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MinDelta <= 0 {
		c.MinDelta = def.MinDelta
	}
	if c.MaxNonInertialDeltaFactor <= 0 {
		c.MaxNonInertialDeltaFactor = def.MaxNonInertialDeltaFactor
	}
	if c.EndDelay <= 0 {
		c.EndDelay = def.EndDelay
	}
	if c.RescrollInterval < 0 {
		c.RescrollInterval = def.RescrollInterval
	}
	if c.TrendWindow < 2 {
		c.TrendWindow = def.TrendWindow
	}
	if c.HistorySize < 2*c.TrendWindow || c.HistorySize < 3 {
		c.HistorySize = max(2*c.TrendWindow, 3)
	}
	if c.SpikeCeiling <= 0 {
		c.SpikeCeiling = def.SpikeCeiling
	}
	if c.SpikeRatio <= 0 {
		c.SpikeRatio = def.SpikeRatio
	}
	if c.SpikeGap < 0 {
		c.SpikeGap = def.SpikeGap
	}
	return c
}
