package orchestration

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/khushparag/agentic-learning-coach/core"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// OTelTelemetry implements core.Telemetry with OpenTelemetry tracing plus
// best-effort metrics recorded against whatever global MeterProvider the
// host process has configured (a Prometheus or OTLP metrics exporter is
// out of this module's scope — see DESIGN.md). Grounded on the teacher's
// telemetry/otel.go for the provider/span/metric-instrument shape, trimmed
// to the one constructor pair this runtime needs: an stdout exporter for
// local development and an OTLP/gRPC exporter for production.
type OTelTelemetry struct {
	tracer   trace.Tracer
	meter    metric.Meter
	provider *sdktrace.TracerProvider

	mu         sync.Mutex
	histograms map[string]metric.Float64Histogram
	counters   map[string]metric.Int64Counter
}

const instrumentationName = "agentic-learning-coach/orchestration"

// NewDevelopmentTelemetry builds a telemetry provider that prints spans to
// stdout, for local runs and tests where standing up a collector is
// unnecessary overhead.
func NewDevelopmentTelemetry(serviceName string) (*OTelTelemetry, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("build stdout trace exporter: %w", err)
	}
	return newProvider(serviceName, exporter)
}

// NewOTLPTelemetry builds a telemetry provider that exports spans to an
// OTLP/gRPC collector at endpoint (e.g. "otel-collector:4317").
func NewOTLPTelemetry(ctx context.Context, serviceName, endpoint string) (*OTelTelemetry, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("build otlp trace exporter for %s: %w", endpoint, err)
	}
	return newProvider(serviceName, exporter)
}

func newProvider(serviceName string, exporter sdktrace.SpanExporter) (*OTelTelemetry, error) {
	if serviceName == "" {
		return nil, fmt.Errorf("telemetry: service name is required")
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return &OTelTelemetry{
		tracer:     tp.Tracer(instrumentationName),
		meter:      otel.Meter(instrumentationName),
		provider:   tp,
		histograms: make(map[string]metric.Float64Histogram),
		counters:   make(map[string]metric.Int64Counter),
	}, nil
}

// StartSpan implements core.Telemetry.
func (t *OTelTelemetry) StartSpan(ctx context.Context, name string) (context.Context, core.Span) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, &otelSpan{span: span}
}

// RecordMetric implements core.Telemetry, routing by name substring into a
// histogram or a counter instrument, cached after first use. Names
// containing "count"/"total"/"errors" record as counters (checked first);
// every other name, "duration"/"latency" ones included, records as a
// histogram, matching the teacher's heuristic.
func (t *OTelTelemetry) RecordMetric(name string, value float64, labels map[string]string) {
	attrs := make([]attribute.KeyValue, 0, len(labels))
	for k, v := range labels {
		attrs = append(attrs, attribute.String(k, v))
	}

	ctx := context.Background()
	switch {
	case strings.Contains(name, "count") || strings.Contains(name, "total") || strings.Contains(name, "errors"):
		counter, err := t.counterFor(name)
		if err == nil {
			counter.Add(ctx, int64(value), metric.WithAttributes(attrs...))
		}
	default:
		histogram, err := t.histogramFor(name)
		if err == nil {
			histogram.Record(ctx, value, metric.WithAttributes(attrs...))
		}
	}
}

func (t *OTelTelemetry) histogramFor(name string) (metric.Float64Histogram, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if h, ok := t.histograms[name]; ok {
		return h, nil
	}
	h, err := t.meter.Float64Histogram(name)
	if err != nil {
		return nil, err
	}
	t.histograms[name] = h
	return h, nil
}

func (t *OTelTelemetry) counterFor(name string) (metric.Int64Counter, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.counters[name]; ok {
		return c, nil
	}
	c, err := t.meter.Int64Counter(name)
	if err != nil {
		return nil, err
	}
	t.counters[name] = c
	return c, nil
}

// Shutdown flushes pending spans and releases exporter resources.
func (t *OTelTelemetry) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}

type otelSpan struct {
	span trace.Span
}

func (s *otelSpan) End() { s.span.End() }

func (s *otelSpan) SetAttribute(key string, value interface{}) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}

func (s *otelSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
}

var _ core.Telemetry = (*OTelTelemetry)(nil)
