package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/kbukum/storefront/httpclient"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/observability"
	"github.com/kbukum/storefront/service"
	"github.com/kbukum/storefront/storage"
	"github.com/kbukum/storefront/store"
	"github.com/kbukum/storefront/version"

	// Storage backends register themselves with storage.New.
	_ "github.com/kbukum/storefront/redis"
	_ "github.com/kbukum/storefront/storage/file"
)

// Hook is a shutdown callback.
type Hook func(ctx context.Context) error

// App holds a wired storefront client.
type App struct {
	Config  *Config
	Logger  *logger.Logger
	Storage storage.Storage
	Client  *httpclient.Client
	Service *service.Service

	Auth     *store.AuthStore
	Cart     *store.CartStore
	Products *store.ProductStore
	Orders   *store.OrderStore
	Theme    *store.ThemeStore

	onStop []Hook
}

// New applies defaults to cfg, validates it, and wires storage, stores,
// client and services.
func New(ctx context.Context, cfg *Config, opts ...Option) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	o := resolveOptions(opts)

	a := &App{Config: cfg, Logger: o.logger}
	if a.Logger == nil {
		a.Logger = logger.New(&cfg.Logging, cfg.Name)
	}

	shutdown, err := observability.Init(ctx, cfg.Telemetry, cfg.Name, version.Get().Short())
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}
	a.OnStop(Hook(shutdown))
	if cfg.Telemetry.Enabled {
		cfg.API.Instrument = true
	}

	a.Storage = o.storage
	if a.Storage == nil {
		a.Storage, err = storage.New(cfg.Storage, &cfg.Redis, a.Logger)
		if err != nil {
			_ = a.Close(ctx)
			return nil, fmt.Errorf("storage: %w", err)
		}
		if c, ok := a.Storage.(io.Closer); ok {
			a.OnStop(func(context.Context) error { return c.Close() })
		}
	}

	a.Auth = store.NewAuthStore(a.Storage, a.Logger)
	a.Cart = store.NewCartStore(a.Storage, a.Logger)
	a.Products = store.NewProductStore()
	a.Orders = store.NewOrderStore()
	a.Theme = store.NewThemeStore(a.Storage, o.presenter, a.Logger)

	if cfg.API.Headers == nil {
		cfg.API.Headers = map[string]string{}
	}
	if _, ok := cfg.API.Headers["User-Agent"]; !ok {
		cfg.API.Headers["User-Agent"] = version.UserAgent()
	}
	clientOpts := []httpclient.Option{
		httpclient.WithTokenSource(a.Auth),
		httpclient.WithLogger(a.Logger.WithComponent("httpclient")),
	}
	if o.transport != nil {
		clientOpts = append(clientOpts, httpclient.WithTransport(o.transport))
	}
	a.Client, err = httpclient.New(cfg.API, clientOpts...)
	if err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("api client: %w", err)
	}
	a.Service = service.New(a.Client, a.Auth, a.Logger.WithComponent("service"))

	a.Logger.Debug("storefront client ready", logger.Fields(
		"base_url", a.Client.Config().BaseURL,
		logger.FieldProvider, cfg.Storage.Provider,
		"profile", cfg.Storage.Profile,
	))
	return a, nil
}

// OnStop registers hooks run by Close in reverse order.
func (a *App) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// Close runs the stop hooks and joins their errors.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.onStop) - 1; i >= 0; i-- {
		if err := a.onStop[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.onStop = nil
	return errors.Join(errs...)
}
