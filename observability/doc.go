// Package observability initializes OpenTelemetry tracing and metrics for
// storefront binaries and provides the instruments the API client records
// into.
//
// When telemetry is disabled the global no-op providers stay in place, so
// instrumented code can always call Tracer and Meter.
//
//	shutdown, err := observability.Init(ctx, cfg.Telemetry, "storefront", version.Get().Version)
//	defer shutdown(context.Background())
package observability
