package httpclient

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/storefront/observability"
)

// instrumentedTransport opens a client span around each round trip,
// propagates its context in the request headers and records call metrics.
type instrumentedTransport struct {
	next    http.RoundTripper
	metrics *observability.CallMetrics
}

func newInstrumentedTransport(next http.RoundTripper) (*instrumentedTransport, error) {
	metrics, err := observability.NewCallMetrics(observability.Meter())
	if err != nil {
		return nil, err
	}
	return &instrumentedTransport{next: next, metrics: metrics}, nil
}

func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, span := observability.StartSpan(req.Context(), observability.SpanAPICall,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(observability.AttrMethod, req.Method),
			attribute.String(observability.AttrURL, req.URL.Redacted()),
		),
	)
	defer span.End()

	req = req.Clone(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	t.metrics.Start(ctx)
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	status := 0
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if ctx.Err() != nil {
			status = http.StatusRequestTimeout
		}
	} else {
		status = resp.StatusCode
		span.SetAttributes(attribute.Int(observability.AttrStatusCode, status))
		if status >= 500 {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
	class := statusClass(status)
	span.SetAttributes(attribute.String(observability.AttrStatusClass, class))
	t.metrics.End(ctx, req.Method, class, time.Since(start))
	return resp, err
}

// statusClass groups a status code for metrics labels.
func statusClass(status int) string {
	switch {
	case status == 0:
		return "network"
	case status == http.StatusRequestTimeout:
		return "timeout"
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
