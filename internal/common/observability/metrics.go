// internal/common/observability/metrics.go
package observability

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

// Observability owns the otel meter and tracer providers for the process.
type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer
	replyCounter   otelmetric.Int64Counter
	replyDuration  otelmetric.Float64Histogram
}

// Option customises New.
type Option func(*options)

type options struct {
	spanProcessors []sdktrace.SpanProcessor
	skipMetrics    bool
}

// WithSpanProcessor registers an extra span processor, e.g. a
// tracetest.SpanRecorder in tests.
func WithSpanProcessor(sp sdktrace.SpanProcessor) Option {
	return func(o *options) { o.spanProcessors = append(o.spanProcessors, sp) }
}

// WithoutMetrics skips the prometheus exporter. Registering it twice in
// the same process collides on the default registry.
func WithoutMetrics() Option {
	return func(o *options) { o.skipMetrics = true }
}

func New(serviceName string, log Logger, opts ...Option) *Observability {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	res := resource.NewSchemaless(semconv.ServiceName(serviceName))

	tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	for _, sp := range o.spanProcessors {
		tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(sp))
	}
	tp := sdktrace.NewTracerProvider(tpOpts...)

	obs := &Observability{
		tracerProvider: tp,
		tracer:         tp.Tracer(serviceName),
	}

	if o.skipMetrics {
		return obs
	}

	exporter, err := prometheus.New()
	if err != nil {
		if log != nil {
			log.Warn("Failed to create Prometheus exporter", map[string]interface{}{"error": err.Error()})
		}
		return obs
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter), metric.WithResource(res))
	otel.SetMeterProvider(provider)
	meter := provider.Meter(serviceName)

	obs.meterProvider = provider
	obs.replyCounter, _ = meter.Int64Counter(
		"chat.replies",
		otelmetric.WithDescription("Number of chat replies produced"),
	)
	obs.replyDuration, _ = meter.Float64Histogram(
		"chat.reply.duration",
		otelmetric.WithDescription("Chat reply latency"),
		otelmetric.WithUnit("ms"),
	)

	return obs
}

// Tracer returns the process tracer. Safe on a nil receiver.
func (o *Observability) Tracer() trace.Tracer {
	if o == nil || o.tracer == nil {
		return otel.Tracer("gear9-chatbot")
	}
	return o.tracer
}

func (o *Observability) RecordReply(ctx context.Context, source, language string) {
	if o == nil || o.replyCounter == nil {
		return
	}
	o.replyCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("source", source),
		attribute.String("language", language),
	))
}

func (o *Observability) RecordReplyDuration(ctx context.Context, duration time.Duration, source string) {
	if o == nil || o.replyDuration == nil {
		return
	}
	o.replyDuration.Record(ctx, float64(duration.Microseconds())/1000, otelmetric.WithAttributes(
		attribute.String("source", source),
	))
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var errs []error
	if o.tracerProvider != nil {
		errs = append(errs, o.tracerProvider.Shutdown(ctx))
	}
	if o.meterProvider != nil {
		errs = append(errs, o.meterProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
