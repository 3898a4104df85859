package telemetry

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/keyboardio/testplan/internal/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

const (
	noneMetricExporterType     metricExporterType = "none"
	consoleMetricExporterType  metricExporterType = "console"
	otlpHTTPMetricExporterType metricExporterType = "otlpHttp"
	grpcHTTPMetricExporterType metricExporterType = "grpcHttp"

	metricReadInterval = time.Second
)

type metricExporterType string

// Meter records run counters. A nil *Meter is valid and records nothing.
type Meter struct {
	metric.Meter
	provider *sdkmetric.MeterProvider

	mu       sync.Mutex
	counters map[string]metric.Int64Counter
}

// NewMeter creates the meter for the exporter selected in opts.
// It returns nil, nil when metrics are disabled.
func NewMeter(ctx context.Context, appName, appVersion string, writer io.Writer, opts *Options) (*Meter, error) {
	exporter, err := NewMetricExporter(ctx, writer, opts)
	if err != nil {
		return nil, err
	}

	if exporter == nil {
		return nil, nil
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(resource.NewSchemaless(
			semconv.ServiceName(appName),
			semconv.ServiceVersion(appVersion),
		)),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(metricReadInterval))),
	)

	otel.SetMeterProvider(provider)

	return &Meter{
		Meter:    provider.Meter(appName),
		provider: provider,
		counters: make(map[string]metric.Int64Counter),
	}, nil
}

// NewMetricExporter creates the exporter named by opts.MetricExporter, or nil for "none".
func NewMetricExporter(ctx context.Context, writer io.Writer, opts *Options) (sdkmetric.Exporter, error) {
	exporterType := metricExporterType(opts.MetricExporter)
	if exporterType == "" {
		exporterType = noneMetricExporterType
	}

	var (
		exp sdkmetric.Exporter
		err error
	)

	switch exporterType {
	case noneMetricExporterType:
		return nil, nil
	case consoleMetricExporterType:
		exp, err = stdoutmetric.New(stdoutmetric.WithWriter(writer))
	case otlpHTTPMetricExporterType:
		var config []otlpmetrichttp.Option
		if opts.MetricExporterInsecureEndpoint {
			config = append(config, otlpmetrichttp.WithInsecure())
		}

		exp, err = otlpmetrichttp.New(ctx, config...)
	case grpcHTTPMetricExporterType:
		var config []otlpmetricgrpc.Option
		if opts.MetricExporterInsecureEndpoint {
			config = append(config, otlpmetricgrpc.WithInsecure())
		}

		exp, err = otlpmetricgrpc.New(ctx, config...)
	default:
		return nil, errors.New(UnknownMetricExporterError(exporterType))
	}

	if err != nil {
		return nil, errors.New(err)
	}

	return exp, nil
}

// Count adds value to the counter called name.
func (meter *Meter) Count(ctx context.Context, name string, value int64, attrs map[string]any) {
	if meter == nil || meter.provider == nil {
		return
	}

	counter, err := meter.counter(name)
	if err != nil {
		otel.Handle(err)
		return
	}

	counter.Add(ctx, value, metric.WithAttributes(mapToAttributes(attrs)...))
}

func (meter *Meter) counter(name string) (metric.Int64Counter, error) {
	meter.mu.Lock()
	defer meter.mu.Unlock()

	if counter, ok := meter.counters[name]; ok {
		return counter, nil
	}

	counter, err := meter.Int64Counter(name)
	if err != nil {
		return nil, errors.New(err)
	}

	meter.counters[name] = counter

	return counter, nil
}

// Shutdown exports the last readings and stops the provider.
func (meter *Meter) Shutdown(ctx context.Context) error {
	if meter == nil || meter.provider == nil {
		return nil
	}

	if err := meter.provider.Shutdown(ctx); err != nil {
		return errors.New(err)
	}

	meter.provider = nil

	return nil
}
