// Package config loads the wheelnorm configuration.
//
// Configuration is resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← WHEELNORM_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← TOML or YAML
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// Each layer is a nested map; layers are deep-merged and the result is
// decoded into Config, rejecting unknown keys. Durations are written as
// strings ("100ms").
//
// # Basic Usage
//
//	cfg, err := config.Load("wheelnorm.toml")
//	if err != nil {
//		return err
//	}
//	adapter := wheel.NewAdapter(target,
//		wheel.WithConfig(cfg.WheelConfig()),
//		wheel.WithEventName(cfg.EventName()),
//	)
//
// # Environment Variables
//
// WHEELNORM_<SECTION>_<SETTING> maps to section.setting with the setting
// converted to camelCase, so WHEELNORM_WHEEL_END_DELAY=150ms sets
// wheel.endDelay. Variables that do not name a known setting are ignored.
//
// # Live Reload
//
// Watcher observes the config file with fsnotify and delivers a freshly
// loaded Config after writes settle.
package config
