package telemetry

// Options selects and configures the trace and metric exporters.
type Options struct {
	// TraceExporter is one of "none", "console", "otlpHttp", "otlpGrpc" or "http".
	TraceExporter string
	// TraceExporterHTTPEndpoint is required by the "http" exporter.
	TraceExporterHTTPEndpoint string
	// TraceExporterInsecureEndpoint disables TLS for the OTLP exporters.
	TraceExporterInsecureEndpoint bool
	// TraceParent continues an existing W3C trace, e.g. one started by the calling CI job.
	TraceParent string

	// MetricExporter is one of "none", "console", "otlpHttp" or "grpcHttp".
	MetricExporter                 string
	MetricExporterInsecureEndpoint bool
}
