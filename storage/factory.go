package storage

import (
	"fmt"
	"sync"

	"github.com/kbukum/storefront/encryption"
	"github.com/kbukum/storefront/logger"
)

// Factory creates a backend from core config and provider-specific
// configuration. Each provider type-asserts providerCfg to its own type.
type Factory func(cfg Config, providerCfg any, log *logger.Logger) (Storage, error)

var (
	newEncryptor = encryption.New

	factoriesMu sync.RWMutex
	factories   = map[string]Factory{
		ProviderMemory: func(Config, any, *logger.Logger) (Storage, error) { return NewMemory(), nil },
	}
)

// RegisterFactory makes a backend available to New. Backend packages call
// it from init.
func RegisterFactory(name string, f Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[name] = f
}

// New builds the configured backend. Import the backend package (for
// example storage/file) so its factory is registered.
func New(cfg Config, providerCfg any, log *logger.Logger) (Storage, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	factoriesMu.RLock()
	f, ok := factories[cfg.Provider]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: provider %q is not registered", cfg.Provider)
	}

	// Build the encryptor before opening the backend.
	var enc encryption.Encryptor
	if cfg.EncryptionKey != "" {
		alg, _ := encryption.ParseAlgorithm(cfg.Algorithm)
		var err error
		if enc, err = newEncryptor(cfg.EncryptionKey, encryption.WithAlgorithm(alg)); err != nil {
			return nil, err
		}
	}

	l := log.WithComponent("storage")
	l.Info("initializing storage", logger.Fields(
		logger.FieldProvider, cfg.Provider,
		"profile", cfg.Profile,
		"encrypted", enc != nil,
	))

	st, err := f(cfg, providerCfg, l)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return st, nil
	}
	return NewEncrypted(st, enc), nil
}
