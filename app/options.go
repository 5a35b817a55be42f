package app

import (
	"net/http"

	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/storage"
	"github.com/kbukum/storefront/store"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger    *logger.Logger
	storage   storage.Storage
	presenter store.Presenter
	transport http.RoundTripper
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger. If not set, one is built from the
// config's logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithStorage uses st instead of building the configured backend.
func WithStorage(st storage.Storage) Option {
	return func(o *appOptions) { o.storage = st }
}

// WithPresenter receives theme changes.
func WithPresenter(p store.Presenter) Option {
	return func(o *appOptions) { o.presenter = p }
}

// WithTransport replaces the HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *appOptions) { o.transport = rt }
}
