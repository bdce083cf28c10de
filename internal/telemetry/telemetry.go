// Package telemetry provides OpenTelemetry tracing for battle runs.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "standbattle"
	serviceVersion = "0.1.0"
)

// Options describe the battle being traced. Every field is optional.
type Options struct {
	// Exporter receives finished spans. Nil exports over OTLP HTTP,
	// configured from the standard OTEL_* environment variables:
	//   - OTEL_EXPORTER_OTLP_ENDPOINT: Honeycomb endpoint (https://api.honeycomb.io)
	//   - OTEL_EXPORTER_OTLP_HEADERS: Headers including x-honeycomb-team=<api-key>
	Exporter sdktrace.SpanExporter

	// SampleRatio is the fraction of battles traced. Zero or above one
	// traces every battle.
	SampleRatio float64

	// Stand user, stand name and roster size go on the resource so every
	// span of a run can be grouped by who fought whom.
	User       string
	Stand      string
	RosterSize int
}

// Setup installs a global tracer provider and returns a shutdown function
// that flushes pending spans; call it on application exit.
func Setup(ctx context.Context, opts Options) (shutdown func(context.Context) error, err error) {
	exporter := opts.Exporter
	if exporter == nil {
		exporter, err = otlptracehttp.New(ctx)
		if err != nil {
			return nil, err
		}
	}

	// Own resource, not merged with Default(), to avoid schema URL conflicts
	res, err := resource.New(ctx, resource.WithAttributes(opts.attributes()...))
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(opts.sampler()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

func (o Options) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
		attribute.String("host.name", hostname()),
		attribute.String("process.runtime.version", runtime.Version()),
	}
	if o.User != "" {
		attrs = append(attrs, attribute.String("stand.user", o.User))
	}
	if o.Stand != "" {
		attrs = append(attrs, attribute.String("stand.name", o.Stand))
	}
	if o.RosterSize > 0 {
		attrs = append(attrs, attribute.Int("roster.size", o.RosterSize))
	}
	return attrs
}

// sampler keeps whole battles together: child command spans follow the
// decision made for battle.run.
func (o Options) sampler() sdktrace.Sampler {
	if o.SampleRatio <= 0 || o.SampleRatio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(o.SampleRatio))
}

// Tracer returns a named tracer for one part of the battle, such as
// "battle" for the script or "stand" for engine commands.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

// NoopTracer returns a no-op tracer for use when telemetry is disabled.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(serviceName + "/noop")
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
