package telemetry

import "context"

type ctxKey byte

const (
	tracerContextKey ctxKey = iota
	meterContextKey
)

// ContextWithTracer returns a new context carrying tracer.
func ContextWithTracer(ctx context.Context, tracer *Tracer) context.Context {
	return context.WithValue(ctx, tracerContextKey, tracer)
}

// TracerFromContext returns the tracer stored in ctx. The nil tracer it returns otherwise is usable.
func TracerFromContext(ctx context.Context) *Tracer {
	if tracer, ok := ctx.Value(tracerContextKey).(*Tracer); ok {
		return tracer
	}

	return nil
}

// ContextWithMeter returns a new context carrying meter.
func ContextWithMeter(ctx context.Context, meter *Meter) context.Context {
	return context.WithValue(ctx, meterContextKey, meter)
}

// MeterFromContext returns the meter stored in ctx, or a usable nil meter.
func MeterFromContext(ctx context.Context) *Meter {
	if meter, ok := ctx.Value(meterContextKey).(*Meter); ok {
		return meter
	}

	return nil
}

// Trace runs fn in a span of the tracer carried by ctx.
func Trace(ctx context.Context, name string, attrs map[string]any, fn func(ctx context.Context) error) error {
	return TracerFromContext(ctx).Trace(ctx, name, attrs, fn)
}

// Count adds value to a counter of the meter carried by ctx.
func Count(ctx context.Context, name string, value int64, attrs map[string]any) {
	MeterFromContext(ctx).Count(ctx, name, value, attrs)
}
