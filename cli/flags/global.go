// Package flags declares the global command line flags shared by all testplan commands.
package flags

import (
	"strings"

	"github.com/keyboardio/testplan/options"
	"github.com/urfave/cli/v2"
)

// EnvPrefix is prepended to every flag's environment variable.
const EnvPrefix = "TESTPLAN_"

const (
	RootDirFlagName   = "root-dir"
	ConfigFlagName    = "config"
	LogLevelFlagName  = "log-level"
	LogFormatFlagName = "log-format"
	NoColorFlagName   = "no-color"

	TelemetryTraceExporterFlagName                 = "telemetry-trace-exporter"
	TelemetryTraceExporterHTTPEndpointFlagName     = "telemetry-trace-exporter-http-endpoint"
	TelemetryTraceExporterInsecureEndpointFlagName = "telemetry-trace-exporter-insecure-endpoint"
	TraceParentFlagName                            = "traceparent"
	TelemetryMetricExporterFlagName                = "telemetry-metric-exporter"
)

// EnvVars returns the environment variable names of the flag with the given name.
func EnvVars(name string) []string {
	return []string{EnvPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))}
}

// NewGlobalFlags returns the global flags, storing their values in cfg. Flags that are not given
// leave their field empty so lower configuration layers apply.
func NewGlobalFlags(cfg *options.Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        RootDirFlagName,
			Aliases:     []string{"d"},
			EnvVars:     EnvVars(RootDirFlagName),
			Destination: &cfg.RootDir,
			Usage:       "Root directory of the testing tree.",
			DefaultText: ".",
		},
		&cli.StringFlag{
			Name:        ConfigFlagName,
			EnvVars:     EnvVars(ConfigFlagName),
			Destination: &cfg.ConfigFile,
			Usage:       "Path to the config file. Defaults to " + options.DefaultConfigFileName + " in the root directory.",
		},
		&cli.StringFlag{
			Name:        LogLevelFlagName,
			EnvVars:     EnvVars(LogLevelFlagName),
			Destination: &cfg.LogLevel,
			Usage:       "Log level: error, warn, info, debug or trace.",
			DefaultText: "info",
		},
		&cli.StringFlag{
			Name:        LogFormatFlagName,
			EnvVars:     EnvVars(LogFormatFlagName),
			Destination: &cfg.LogFormat,
			Usage:       "Log format: text or json.",
			DefaultText: options.LogFormatText,
		},
		&cli.BoolFlag{
			Name:        NoColorFlagName,
			EnvVars:     append(EnvVars(NoColorFlagName), "NO_COLOR"),
			Destination: &cfg.NoColor,
			Usage:       "Disable color output.",
		},
		&cli.StringFlag{
			Name:        TelemetryTraceExporterFlagName,
			EnvVars:     EnvVars(TelemetryTraceExporterFlagName),
			Destination: &cfg.Telemetry.TraceExporter,
			Usage:       "Trace exporter: none, console, http, otlpHttp or otlpGrpc.",
			DefaultText: "none",
		},
		&cli.StringFlag{
			Name:        TelemetryTraceExporterHTTPEndpointFlagName,
			EnvVars:     EnvVars(TelemetryTraceExporterHTTPEndpointFlagName),
			Destination: &cfg.Telemetry.HTTPEndpoint,
			Usage:       "Endpoint of the http trace exporter.",
		},
		&cli.BoolFlag{
			Name:        TelemetryTraceExporterInsecureEndpointFlagName,
			EnvVars:     EnvVars(TelemetryTraceExporterInsecureEndpointFlagName),
			Destination: &cfg.Telemetry.Insecure,
			Usage:       "Talk to OTLP trace and metric endpoints without TLS.",
		},
		&cli.StringFlag{
			Name:        TraceParentFlagName,
			EnvVars:     []string{"TRACEPARENT"},
			Destination: &cfg.Telemetry.TraceParent,
			Usage:       "W3C traceparent the run's spans are attached to.",
		},
		&cli.StringFlag{
			Name:        TelemetryMetricExporterFlagName,
			EnvVars:     EnvVars(TelemetryMetricExporterFlagName),
			Destination: &cfg.Telemetry.MetricExporter,
			Usage:       "Metric exporter: none, console, otlpHttp or grpcHttp.",
			DefaultText: "none",
		},
	}
}
