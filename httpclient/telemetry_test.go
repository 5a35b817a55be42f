package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/observability"
)

func TestInstrumentedTransport(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	prevTP, prevProp := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)))
	otel.SetTextMapPropagator(propagation.TraceContext{})
	defer func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	}()

	var traceparent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceparent = r.Header.Get("Traceparent")
		jsonHandler(200, `{}`)(w, r)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL, Instrument: true}, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp := c.Call(context.Background(), "/public/products", CallOptions{}); resp.Error != "" {
		t.Fatalf("unexpected error %q", resp.Error)
	}

	if traceparent == "" {
		t.Error("expected trace context to be propagated")
	}
	spans := exporter.GetSpans()
	if len(spans) != 1 || spans[0].Name != observability.SpanAPICall {
		t.Fatalf("expected one api span, got %d", len(spans))
	}
}

func TestStatusClass(t *testing.T) {
	tests := map[int]string{0: "network", 200: "2xx", 204: "2xx", 304: "3xx", 404: "4xx", 408: "timeout", 502: "5xx"}
	for status, want := range tests {
		if got := statusClass(status); got != want {
			t.Errorf("statusClass(%d) = %q, want %q", status, got, want)
		}
	}
}
