package config

import (
	"os"
	"strings"

	"github.com/dshills/wheelnorm/internal/input/wheel"
	"github.com/dshills/wheelnorm/internal/logging"
	"github.com/dshills/wheelnorm/internal/platform"
)

// Output formats for emissions.
const (
	OutputJSON  = "json"
	OutputTable = "table"
)

// Config is the complete wheelnorm configuration.
type Config struct {
	Logging  LoggingSettings  `toml:"logging"`
	Wheel    WheelSettings    `toml:"wheel"`
	Platform PlatformSettings `toml:"platform"`
	Output   OutputSettings   `toml:"output"`
}

// LoggingSettings configures the logger.
type LoggingSettings struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// Format is "console" or "json".
	Format string `toml:"format"`

	// File is the log file path. Empty logs to stderr.
	File string `toml:"file"`
}

// WheelSettings mirrors wheel.Config.
type WheelSettings struct {
	MinDelta                  float64  `toml:"minDelta"`
	MaxNonInertialDeltaFactor float64  `toml:"maxNonInertialDeltaFactor"`
	EndDelay                  Duration `toml:"endDelay"`
	DetectRescroll            bool     `toml:"detectRescroll"`
	RescrollInterval          Duration `toml:"rescrollInterval"`
	HistorySize               int      `toml:"historySize"`
	TrendWindow               int      `toml:"trendWindow"`
	SpikeCeiling              float64  `toml:"spikeCeiling"`
	SpikeRatio                float64  `toml:"spikeRatio"`
	SpikeGap                  float64  `toml:"spikeGap"`
}

// PlatformSettings selects the native wheel event name.
type PlatformSettings struct {
	// EventName forces the event name.
	EventName string `toml:"eventName"`

	// Browser selects a browser from the platform table by ID.
	Browser string `toml:"browser"`

	// UserAgent and Vendor are matched against the platform table.
	UserAgent string `toml:"userAgent"`
	Vendor    string `toml:"vendor"`
}

// OutputSettings configures how emissions are reported.
type OutputSettings struct {
	// Format is "json" or "table".
	Format string `toml:"format"`

	// Synthetic includes the synthetic boundaries of a rescroll.
	Synthetic bool `toml:"synthetic"`

	// LineDelta is the pixel delta of one terminal wheel notch.
	LineDelta float64 `toml:"lineDelta"`
}

// Default returns the built-in configuration.
func Default() *Config {
	wc := wheel.DefaultConfig()
	return &Config{
		Logging: LoggingSettings{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		Wheel: WheelSettings{
			MinDelta:                  wc.MinDelta,
			MaxNonInertialDeltaFactor: wc.MaxNonInertialDeltaFactor,
			EndDelay:                  Duration(wc.EndDelay),
			DetectRescroll:            wc.DetectRescroll,
			RescrollInterval:          Duration(wc.RescrollInterval),
			HistorySize:               wc.HistorySize,
			TrendWindow:               wc.TrendWindow,
			SpikeCeiling:              wc.SpikeCeiling,
			SpikeRatio:                wc.SpikeRatio,
			SpikeGap:                  wc.SpikeGap,
		},
		Output: OutputSettings{
			Format:    OutputJSON,
			Synthetic: true,
			LineDelta: 40,
		},
	}
}

// WheelConfig converts the wheel section for the adapter.
func (c *Config) WheelConfig() wheel.Config {
	w := c.Wheel
	return wheel.Config{
		MinDelta:                  w.MinDelta,
		MaxNonInertialDeltaFactor: w.MaxNonInertialDeltaFactor,
		EndDelay:                  w.EndDelay.Std(),
		DetectRescroll:            w.DetectRescroll,
		RescrollInterval:          w.RescrollInterval.Std(),
		HistorySize:               w.HistorySize,
		TrendWindow:               w.TrendWindow,
		SpikeCeiling:              w.SpikeCeiling,
		SpikeRatio:                w.SpikeRatio,
		SpikeGap:                  w.SpikeGap,
	}
}

// EventName resolves the native wheel event name. An explicit event name
// wins over a browser ID, which wins over user agent detection. With
// nothing configured the standard "wheel" event is used.
func (c *Config) EventName() string {
	p := c.Platform
	switch {
	case p.EventName != "":
		return p.EventName
	case p.Browser != "":
		if b, ok := platform.ByID(p.Browser); ok {
			return b.WheelEvent
		}
	case p.UserAgent != "" || p.Vendor != "":
		return platform.WheelEventName(p.UserAgent, p.Vendor)
	}
	return wheel.DefaultEventName
}

// LoggerConfig converts the logging section. When a log file is configured
// it is opened and returned; the caller closes it.
func (c *Config) LoggerConfig() (logging.LoggerConfig, *os.File, error) {
	cfg := logging.DefaultLoggerConfig()
	cfg.Level = logging.ParseLogLevel(c.Logging.Level)
	cfg.Format = c.Logging.Format
	if c.Logging.File == "" {
		return cfg, nil, nil
	}
	f, err := os.OpenFile(c.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return cfg, nil, err
	}
	cfg.Output = f
	return cfg, f, nil
}

func validFormat(s string, allowed ...string) bool {
	for _, a := range allowed {
		if strings.EqualFold(s, a) {
			return true
		}
	}
	return false
}
