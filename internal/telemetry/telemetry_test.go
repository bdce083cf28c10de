package telemetry

import (
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetupRecordsSpans(t *testing.T) {
	ctx := context.Background()
	exporter := tracetest.NewInMemoryExporter()

	shutdown, err := Setup(ctx, Options{
		Exporter:   exporter,
		User:       "Yoshikage Kira",
		Stand:      "Queen Killer",
		RosterSize: 3,
	})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer shutdown(ctx)

	_, span := Tracer("test").Start(ctx, "unit.span")
	span.End()

	tp, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	if !ok {
		t.Fatal("Expected SDK tracer provider to be registered")
	}
	if err := tp.ForceFlush(ctx); err != nil {
		t.Fatalf("ForceFlush failed: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != "unit.span" {
		t.Errorf("Expected span name unit.span, got %q", spans[0].Name)
	}
	if spans[0].InstrumentationScope.Name != "standbattle/test" {
		t.Errorf("Unexpected tracer name %q", spans[0].InstrumentationScope.Name)
	}

	got := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Resource.Attributes() {
		got[kv.Key] = kv.Value
	}
	if got["service.name"].AsString() != "standbattle" {
		t.Errorf("service.name = %q", got["service.name"].AsString())
	}
	if got["stand.user"].AsString() != "Yoshikage Kira" || got["stand.name"].AsString() != "Queen Killer" {
		t.Errorf("Missing stand attributes: %v", spans[0].Resource.Attributes())
	}
	if got["roster.size"].AsInt64() != 3 {
		t.Errorf("roster.size = %d, want 3", got["roster.size"].AsInt64())
	}
}

func TestOptionsOmitEmptyDescriptors(t *testing.T) {
	for _, kv := range (Options{}).attributes() {
		switch kv.Key {
		case "stand.user", "stand.name", "roster.size":
			t.Errorf("Unexpected attribute %s for empty options", kv.Key)
		}
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{0, "AlwaysOnSampler"},
		{1, "AlwaysOnSampler"},
		{0.25, "ParentBased{root:TraceIDRatioBased{0.25}"},
	}

	for _, tt := range tests {
		got := Options{SampleRatio: tt.ratio}.sampler().Description()
		if !strings.HasPrefix(got, tt.want) {
			t.Errorf("sampler(%v) = %q, want prefix %q", tt.ratio, got, tt.want)
		}
	}
}

func TestNoopTracer(t *testing.T) {
	_, span := NoopTracer().Start(context.Background(), "ignored")
	if span.SpanContext().IsValid() {
		t.Error("Noop tracer should produce invalid span contexts")
	}
	span.End()
}
