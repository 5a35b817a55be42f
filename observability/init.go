package observability

import (
	"context"
	"errors"
)

// ShutdownFunc flushes and stops the providers started by Init.
type ShutdownFunc func(ctx context.Context) error

// Init starts tracing and metrics when cfg.Enabled is set. The returned
// ShutdownFunc is never nil.
func Init(ctx context.Context, cfg Config, serviceName, serviceVersion string) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tp, err := InitTracer(ctx, cfg, serviceName, serviceVersion)
	if err != nil {
		return nil, err
	}
	mp, err := InitMeter(ctx, cfg, serviceName, serviceVersion)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
