package config

import (
	"errors"
	"fmt"

	"github.com/dshills/wheelnorm/internal/logging"
	"github.com/dshills/wheelnorm/internal/platform"
)

// Validate checks every setting and reports all problems at once.
// Each problem is a *ValidationError matching ErrValidationFailed.
func (c *Config) Validate() error {
	var errs []error
	add := func(path, format string, args ...any) {
		errs = append(errs, &ValidationError{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if !logging.ValidLevel(c.Logging.Level) {
		add("logging.level", "unknown level %q", c.Logging.Level)
	}
	if !validFormat(c.Logging.Format, logging.FormatConsole, logging.FormatJSON) {
		add("logging.format", "must be %q or %q", logging.FormatConsole, logging.FormatJSON)
	}

	w := c.Wheel
	if w.MinDelta <= 0 {
		add("wheel.minDelta", "must be positive")
	}
	if w.MaxNonInertialDeltaFactor < 1 {
		add("wheel.maxNonInertialDeltaFactor", "must be at least 1")
	}
	if w.EndDelay <= 0 {
		add("wheel.endDelay", "must be positive")
	}
	if w.RescrollInterval < 0 {
		add("wheel.rescrollInterval", "must not be negative")
	}
	if w.TrendWindow < 2 {
		add("wheel.trendWindow", "must be at least 2")
	}
	if w.HistorySize < 2*w.TrendWindow || w.HistorySize < 3 {
		add("wheel.historySize", "must hold two trend windows and at least 3 samples")
	}
	if w.SpikeCeiling <= 0 {
		add("wheel.spikeCeiling", "must be positive")
	}
	if w.SpikeRatio <= 0 {
		add("wheel.spikeRatio", "must be positive")
	}
	if w.SpikeGap < 0 {
		add("wheel.spikeGap", "must not be negative")
	}

	if b := c.Platform.Browser; b != "" {
		if _, ok := platform.ByID(b); !ok {
			add("platform.browser", "unknown browser %q", b)
		}
	}

	if !validFormat(c.Output.Format, OutputJSON, OutputTable) {
		add("output.format", "must be %q or %q", OutputJSON, OutputTable)
	}
	if c.Output.LineDelta <= 0 {
		add("output.lineDelta", "must be positive")
	}

	return errors.Join(errs...)
}
