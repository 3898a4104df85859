// Package telemetry traces the stages of a planning run with OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/keyboardio/testplan/internal/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	noneTraceExporterType     traceExporterType = "none"
	consoleTraceExporterType  traceExporterType = "console"
	otlpHTTPTraceExporterType traceExporterType = "otlpHttp"
	otlpGrpcTraceExporterType traceExporterType = "otlpGrpc"
	httpTraceExporterType     traceExporterType = "http"

	traceParentParts = 4
)

type traceExporterType string

// Tracer wraps an OpenTelemetry tracer. A nil *Tracer is valid and traces nothing.
type Tracer struct {
	trace.Tracer
	provider          *sdktrace.TracerProvider
	parentSpanContext *trace.SpanContext
}

// NewTracer creates the tracer for the exporter selected in opts.
// It returns nil, nil when tracing is disabled.
func NewTracer(ctx context.Context, appName, appVersion string, writer io.Writer, opts *Options) (*Tracer, error) {
	spanExporter, err := NewTraceExporter(ctx, writer, opts)
	if err != nil {
		return nil, err
	}

	if spanExporter == nil {
		return nil, nil
	}

	parent, err := parseTraceParent(opts.TraceParent)
	if err != nil {
		return nil, err
	}

	provider, err := newTraceProvider(spanExporter, appName, appVersion)
	if err != nil {
		return nil, err
	}

	otel.SetTracerProvider(provider)

	return &Tracer{
		Tracer:            provider.Tracer(appName),
		provider:          provider,
		parentSpanContext: parent,
	}, nil
}

func newTraceProvider(exp sdktrace.SpanExporter, appName, appVersion string) (*sdktrace.TracerProvider, error) {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(appName),
			semconv.ServiceVersion(appVersion),
		),
	)
	if err != nil {
		return nil, errors.New(err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	), nil
}

// NewTraceExporter creates the span exporter named by opts.TraceExporter, or nil for "none".
func NewTraceExporter(ctx context.Context, writer io.Writer, opts *Options) (sdktrace.SpanExporter, error) {
	exporterType := traceExporterType(opts.TraceExporter)
	if exporterType == "" {
		exporterType = noneTraceExporterType
	}

	switch exporterType {
	case noneTraceExporterType:
		return nil, nil
	case consoleTraceExporterType:
		exp, err := stdouttrace.New(stdouttrace.WithWriter(writer))
		if err != nil {
			return nil, errors.New(err)
		}

		return exp, nil
	case httpTraceExporterType:
		if opts.TraceExporterHTTPEndpoint == "" {
			return nil, errors.New(MissingOptionError{Exporter: string(exporterType), Option: "an HTTP endpoint"})
		}

		config := []otlptracehttp.Option{otlptracehttp.WithEndpoint(opts.TraceExporterHTTPEndpoint)}
		if opts.TraceExporterInsecureEndpoint {
			config = append(config, otlptracehttp.WithInsecure())
		}

		return newOTLPHTTPExporter(ctx, config...)
	case otlpHTTPTraceExporterType:
		var config []otlptracehttp.Option
		if opts.TraceExporterInsecureEndpoint {
			config = append(config, otlptracehttp.WithInsecure())
		}

		return newOTLPHTTPExporter(ctx, config...)
	case otlpGrpcTraceExporterType:
		var config []otlptracegrpc.Option
		if opts.TraceExporterInsecureEndpoint {
			config = append(config, otlptracegrpc.WithInsecure())
		}

		exp, err := otlptracegrpc.New(ctx, config...)
		if err != nil {
			return nil, errors.New(err)
		}

		return exp, nil
	default:
		return nil, errors.New(UnknownExporterError(exporterType))
	}
}

func newOTLPHTTPExporter(ctx context.Context, config ...otlptracehttp.Option) (sdktrace.SpanExporter, error) {
	exp, err := otlptracehttp.New(ctx, config...)
	if err != nil {
		return nil, errors.New(err)
	}

	return exp, nil
}

// parseTraceParent parses a W3C `version-traceid-spanid-flags` value.
func parseTraceParent(value string) (*trace.SpanContext, error) {
	if value == "" {
		return nil, nil
	}

	parts := strings.Split(value, "-")
	if len(parts) != traceParentParts {
		return nil, errors.New(InvalidTraceParentError(value))
	}

	traceID, err := trace.TraceIDFromHex(parts[1])
	if err != nil {
		return nil, errors.Errorf("%w: %w", InvalidTraceParentError(value), err)
	}

	spanID, err := trace.SpanIDFromHex(parts[2])
	if err != nil {
		return nil, errors.Errorf("%w: %w", InvalidTraceParentError(value), err)
	}

	var flags trace.TraceFlags
	if parts[3] != "00" {
		flags = trace.FlagsSampled
	}

	spanContext := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: flags,
		Remote:     true,
	})

	return &spanContext, nil
}

// Trace runs fn inside a span named name. Without a configured exporter fn is invoked directly.
func (tracer *Tracer) Trace(ctx context.Context, name string, attrs map[string]any, fn func(ctx context.Context) error) error {
	if tracer == nil || tracer.provider == nil {
		return fn(ctx)
	}

	if tracer.parentSpanContext != nil && !trace.SpanContextFromContext(ctx).IsValid() {
		ctx = trace.ContextWithSpanContext(ctx, *tracer.parentSpanContext)
	}

	ctx, span := tracer.Start(ctx, name, trace.WithAttributes(mapToAttributes(attrs)...))
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// Shutdown flushes pending spans and stops the provider.
func (tracer *Tracer) Shutdown(ctx context.Context) error {
	if tracer == nil || tracer.provider == nil {
		return nil
	}

	if err := tracer.provider.Shutdown(ctx); err != nil {
		return errors.New(err)
	}

	tracer.provider = nil

	return nil
}

// mapToAttributes converts map to attributes to pass to span.SetAttributes.
func mapToAttributes(data map[string]any) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(data))

	for k, v := range data {
		switch val := v.(type) {
		case string:
			attrs = append(attrs, attribute.String(k, val))
		case int:
			attrs = append(attrs, attribute.Int(k, val))
		case int64:
			attrs = append(attrs, attribute.Int64(k, val))
		case bool:
			attrs = append(attrs, attribute.Bool(k, val))
		default:
			attrs = append(attrs, attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}

	return attrs
}
