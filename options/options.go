// Package options provides the set of options that configure a testplan run.
package options

import (
	"context"
	"io"
	"os"

	"github.com/keyboardio/testplan/internal/discovery"
	"github.com/keyboardio/testplan/internal/errors"
	"github.com/keyboardio/testplan/internal/telemetry"
	"github.com/keyboardio/testplan/internal/vfs"
	"github.com/keyboardio/testplan/pkg/log"
	"github.com/mattn/go-isatty"
)

const ContextKey ctxKey = iota

const (
	// DefaultConfigFileName is looked up in the testing tree root when no config file is given.
	DefaultConfigFileName = ".testplan.yaml"

	LogFormatText = "text"
	LogFormatJSON = "json"

	defaultLogLevel = log.InfoLevel
)

type ctxKey byte

// TestplanOptions is the resolved configuration of one run.
type TestplanOptions struct {
	// Root of the testing tree.
	RootDir string

	// Export targets, each `format=path`.
	Outputs []string

	// What to do with output files that already exist: overwrite, skip or error.
	IfExists string

	// File naming conventions of the testing tree.
	Conventions discovery.Conventions

	LogLevel  log.Level
	LogFormat string

	// Disable log colors
	NoColor bool

	// Config file the options were read from, if any.
	ConfigFile string

	Telemetry *telemetry.Options

	// Version of testplan
	AppVersion string

	// Writer is where command output (e.g. `list`) goes.
	Writer io.Writer
	// ErrWriter receives logs and traces.
	ErrWriter io.Writer

	Logger log.Logger

	// FS is the filesystem the tree is read from and outputs are written to.
	FS vfs.FS
}

// NewTestplanOptions creates options with reasonable defaults for real usage.
func NewTestplanOptions() *TestplanOptions {
	return NewTestplanOptionsWithWriters(os.Stdout, os.Stderr)
}

// NewTestplanOptionsWithWriters creates default options writing to the given writers.
func NewTestplanOptionsWithWriters(stdout, stderr io.Writer) *TestplanOptions {
	opts := &TestplanOptions{
		RootDir:     ".",
		Conventions: discovery.DefaultConventions(),
		LogLevel:    defaultLogLevel,
		LogFormat:   LogFormatText,
		IfExists:    "overwrite",
		Telemetry:   &telemetry.Options{},
		Writer:      stdout,
		ErrWriter:   stderr,
		FS:          vfs.NewOSFS(),
	}

	opts.Logger = opts.newLogger()

	return opts
}

// NewTestplanOptionsForTest creates options reading root from fs, logging at debug level to io.Discard.
func NewTestplanOptionsForTest(fs vfs.FS, root string) *TestplanOptions {
	opts := NewTestplanOptionsWithWriters(io.Discard, io.Discard)
	opts.FS = fs
	opts.RootDir = root
	opts.LogLevel = log.DebugLevel
	opts.Logger = opts.newLogger()

	return opts
}

// Apply replaces the options with the values of cfg and rebuilds the logger.
func (opts *TestplanOptions) Apply(cfg *Config) error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	switch cfg.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return errors.New(InvalidLogFormatError(cfg.LogFormat))
	}

	opts.RootDir = cfg.RootDir
	opts.Outputs = cfg.Outputs
	opts.IfExists = cfg.IfExists
	opts.Conventions = cfg.Conventions
	opts.LogLevel = level
	opts.LogFormat = cfg.LogFormat
	opts.NoColor = cfg.NoColor
	opts.ConfigFile = cfg.ConfigFile
	opts.Telemetry = &telemetry.Options{
		TraceExporter:                  cfg.Telemetry.TraceExporter,
		TraceExporterHTTPEndpoint:      cfg.Telemetry.HTTPEndpoint,
		TraceExporterInsecureEndpoint:  cfg.Telemetry.Insecure,
		TraceParent:                    cfg.Telemetry.TraceParent,
		MetricExporter:                 cfg.Telemetry.MetricExporter,
		MetricExporterInsecureEndpoint: cfg.Telemetry.Insecure,
	}
	opts.Logger = opts.newLogger()

	return nil
}

func (opts *TestplanOptions) newLogger() log.Logger {
	var formatter log.Formatter

	if opts.LogFormat == LogFormatJSON {
		formatter = log.NewJSONFormatter()
	} else {
		text := log.NewTextFormatter()
		if opts.NoColor || !isTerminal(opts.ErrWriter) {
			text.DisableColors()
		}

		formatter = text
	}

	return log.New(
		log.WithOutput(opts.ErrWriter),
		log.WithLevel(opts.LogLevel),
		log.WithFormatter(formatter),
	)
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// ContextWithOptions returns a new context carrying opts.
func ContextWithOptions(ctx context.Context, opts *TestplanOptions) context.Context {
	return context.WithValue(ctx, ContextKey, opts)
}

// OptionsFromContext tries to retrieve options from context, otherwise, returns its own instance.
func (opts *TestplanOptions) OptionsFromContext(ctx context.Context) *TestplanOptions {
	if val := ctx.Value(ContextKey); val != nil {
		if opts, ok := val.(*TestplanOptions); ok {
			return opts
		}
	}

	return opts
}
