package telemetry_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/keyboardio/testplan/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTraceExporter(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		opts        telemetry.Options
		expectNil   bool
		expectError bool
	}{
		{name: "default is disabled", opts: telemetry.Options{}, expectNil: true},
		{name: "none", opts: telemetry.Options{TraceExporter: "none"}, expectNil: true},
		{name: "console", opts: telemetry.Options{TraceExporter: "console"}},
		{name: "otlp http", opts: telemetry.Options{TraceExporter: "otlpHttp"}},
		{name: "otlp grpc", opts: telemetry.Options{TraceExporter: "otlpGrpc", TraceExporterInsecureEndpoint: true}},
		{
			name: "http with endpoint",
			opts: telemetry.Options{TraceExporter: "http", TraceExporterHTTPEndpoint: "localhost:4318", TraceExporterInsecureEndpoint: true},
		},
		{name: "http without endpoint", opts: telemetry.Options{TraceExporter: "http"}, expectError: true},
		{name: "unknown", opts: telemetry.Options{TraceExporter: "zipkin"}, expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			exp, err := telemetry.NewTraceExporter(context.Background(), io.Discard, &tc.opts)
			if tc.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)

			if tc.expectNil {
				assert.Nil(t, exp)
				return
			}

			assert.NotNil(t, exp)
		})
	}
}

func TestNilTracerRunsFunction(t *testing.T) {
	t.Parallel()

	var called bool

	err := telemetry.Trace(context.Background(), "stage", nil, func(context.Context) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
}

func TestConsoleTracerWritesSpans(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := context.Background()

	tracer, err := telemetry.NewTracer(ctx, "testplan", "test", &buf, &telemetry.Options{
		TraceExporter: "console",
		TraceParent:   "00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-01",
	})
	require.NoError(t, err)
	require.NotNil(t, tracer)

	ctx = telemetry.ContextWithTracer(ctx, tracer)
	expected := errors.New("boom")

	err = telemetry.Trace(ctx, "build-tree", map[string]any{"root": "/tests", "nodes": 3}, func(context.Context) error {
		return expected
	})
	require.ErrorIs(t, err, expected)

	require.NoError(t, tracer.Shutdown(ctx))
	assert.Contains(t, buf.String(), "build-tree")
	assert.Contains(t, buf.String(), "0af7651916cd43dd8448eb211c80319c")
}

func TestInvalidTraceParent(t *testing.T) {
	t.Parallel()

	_, err := telemetry.NewTracer(context.Background(), "testplan", "test", io.Discard, &telemetry.Options{
		TraceExporter: "console",
		TraceParent:   "garbage",
	})
	require.Error(t, err)
}
