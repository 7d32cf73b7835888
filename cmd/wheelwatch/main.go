// Package main is the entry point for wheelwatch, a live terminal monitor
// of normalized wheel gestures.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dshills/wheelnorm/internal/config"
	"github.com/dshills/wheelnorm/internal/input/wheel"
	"github.com/dshills/wheelnorm/internal/logging"
	"github.com/dshills/wheelnorm/internal/schedule"
	"github.com/dshills/wheelnorm/internal/source"
	"github.com/dshills/wheelnorm/internal/trace"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	watch      bool
	recordPath string
	logLevel   string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	// The screen owns stderr, so logs go to the configured file or nowhere.
	logger := logging.Nop()
	if cfg.Logging.File != "" {
		logCfg, logFile, err := cfg.LoggerConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
			return 1
		}
		defer logFile.Close()
		logger = logging.NewLogger(logCfg)
		defer logger.Sync()
	}

	term, err := source.NewTerminal(
		source.WithLineDelta(cfg.Output.LineDelta),
		source.WithTerminalEventName(cfg.EventName()),
		source.WithTerminalLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer term.Shutdown()

	clock := schedule.NewLoopClock(term.Post)
	mon := newMonitor(term, clock, cfg, logger)
	defer mon.close()

	if opts.recordPath != "" {
		f, err := os.Create(opts.recordPath)
		if err != nil {
			term.Shutdown()
			fmt.Fprintf(os.Stderr, "Error: failed to create recording: %v\n", err)
			return 1
		}
		defer f.Close()
		rw := trace.NewRecordWriter(f, time.Now())
		term.AddListener(term.EventName(), func(raw wheel.RawEvent) {
			if err := rw.Write(raw); err != nil {
				logger.Warn("recording failed", "error", err)
			}
		})
	}

	if opts.watch && opts.configPath != "" {
		watcher, err := config.NewWatcher(opts.configPath,
			func(c *config.Config) {
				term.Post(func() { mon.reconfigure(c) })
			},
			config.WithWatcherLogger(logger),
			config.WithErrorHandler(func(err error) {
				term.Post(func() { mon.setStatus("reload failed: " + err.Error()) })
			}),
		)
		if err != nil {
			term.Shutdown()
			fmt.Fprintf(os.Stderr, "Error: failed to watch config: %v\n", err)
			return 1
		}
		defer watcher.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mon.draw()
	if err := term.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		term.Shutdown()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.watch, "watch", false, "Reload the configuration file when it changes")
	flag.StringVar(&opts.recordPath, "record", "", "Write raw wheel events to a trace file")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "wheelwatch - live wheel gesture monitor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: wheelwatch [options]\n\n")
		fmt.Fprintf(os.Stderr, "Scroll in the terminal to see normalized notifications. Press q or Esc to quit.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  wheelwatch -c wheelnorm.toml -watch    Monitor and follow config edits\n")
		fmt.Fprintf(os.Stderr, "  wheelwatch -record gesture.jsonl       Record a trace for wheeltrace\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("wheelwatch %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.logLevel != "" && !logging.ValidLevel(opts.logLevel) {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}
	if opts.watch && opts.configPath == "" {
		fmt.Fprintf(os.Stderr, "Error: -watch requires -config\n")
		os.Exit(1)
	}

	return opts
}
