package telemetry

import "fmt"

// MissingOptionError is returned when the selected exporter needs a setting that was not given.
type MissingOptionError struct {
	Exporter string
	Option   string
}

func (err MissingOptionError) Error() string {
	return fmt.Sprintf("trace exporter %q requires %s", err.Exporter, err.Option)
}

// UnknownExporterError is returned for an exporter name that is not supported.
type UnknownExporterError string

func (err UnknownExporterError) Error() string {
	return fmt.Sprintf("unknown trace exporter %q, supported: none, console, otlpHttp, otlpGrpc, http", string(err))
}

// UnknownMetricExporterError is returned for a metric exporter name that is not supported.
type UnknownMetricExporterError string

func (err UnknownMetricExporterError) Error() string {
	return fmt.Sprintf("unknown metric exporter %q, supported: none, console, otlpHttp, grpcHttp", string(err))
}

// InvalidTraceParentError is returned when the trace parent is not a W3C traceparent value.
type InvalidTraceParentError string

func (err InvalidTraceParentError) Error() string {
	return fmt.Sprintf("invalid trace parent %q", string(err))
}
