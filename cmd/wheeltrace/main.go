// Package main is the entry point for wheeltrace, which replays a recorded
// wheel trace through the normalizer and prints the notifications it
// publishes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/wheelnorm/internal/config"
	"github.com/dshills/wheelnorm/internal/logging"
	"github.com/dshills/wheelnorm/internal/script"
	"github.com/dshills/wheelnorm/internal/trace"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath    string
	format        string
	scriptPath    string
	logLevel      string
	omitSynthetic bool
	showVersion   bool
	input         string
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "wheeltrace %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	if err := replay(opts, stdin, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("wheeltrace", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.format, "format", "", "Output format (json, table); overrides output.format")
	fs.StringVar(&opts.scriptPath, "script", "", "Lua script annotating emissions")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.omitSynthetic, "omit-synthetic", false, "Drop the synthetic end/start pair of rescrolls")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "wheeltrace - replay a wheel event trace\n\n")
		fmt.Fprintf(stderr, "Usage: wheeltrace [options] [trace.jsonl]\n\n")
		fmt.Fprintf(stderr, "Reads the trace from standard input when no file is given.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.format != "" && opts.format != config.OutputJSON && opts.format != config.OutputTable {
		return opts, fmt.Errorf("invalid format %q (must be json or table)", opts.format)
	}
	if opts.logLevel != "" && !logging.ValidLevel(opts.logLevel) {
		return opts, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.logLevel)
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.input = fs.Arg(0)
	default:
		return opts, fmt.Errorf("expected at most one trace file, got %d", fs.NArg())
	}
	return opts, nil
}

func replay(opts options, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.format != "" {
		cfg.Output.Format = opts.format
	}

	logCfg, logFile, err := cfg.LoggerConfig()
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	if logFile != nil {
		defer logFile.Close()
	} else {
		logCfg.Output = stderr
	}
	logger := logging.NewLogger(logCfg).WithComponent("wheeltrace")
	defer logger.Sync()

	records, err := readTrace(opts.input, stdin)
	if err != nil {
		return err
	}
	logger.Debug("trace loaded", "records", len(records))

	replayOpts := trace.Options{
		Config:        cfg.WheelConfig(),
		OmitSynthetic: opts.omitSynthetic || !cfg.Output.Synthetic,
		Logger:        logger,
	}
	if cfg.Platform != (config.PlatformSettings{}) {
		replayOpts.EventName = cfg.EventName()
	}

	if opts.scriptPath != "" {
		hook, err := script.Load(opts.scriptPath, script.WithLogger(logger))
		if err != nil {
			return err
		}
		defer hook.Close()
		logger.Debug("script loaded", "hooks", strings.Join(hook.Defined(), ","))
		replayOpts.Annotate = hook.Annotate
	}

	emissions, err := trace.Replay(records, replayOpts)
	if err != nil {
		return err
	}

	if strings.EqualFold(cfg.Output.Format, config.OutputTable) {
		_, err = io.WriteString(stdout, renderTable(emissions))
		return err
	}
	return trace.NewWriter(stdout).WriteAll(emissions)
}

func readTrace(path string, stdin io.Reader) ([]trace.Record, error) {
	if path == "" || path == "-" {
		return trace.Read(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace: %w", err)
	}
	defer f.Close()

	records, err := trace.Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
