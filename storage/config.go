package storage

import (
	"fmt"

	"github.com/kbukum/storefront/encryption"
)

// Provider names.
const (
	ProviderMemory = "memory"
	ProviderFile   = "file"
	ProviderRedis  = "redis"
)

// DefaultProvider is used when none is configured.
const DefaultProvider = ProviderFile

// Config selects and configures the storage backend.
type Config struct {
	// Provider is "memory", "file" or "redis".
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Path is the file backend's document. Defaults to
	// <user config dir>/storefront/<profile>.json.
	Path string `yaml:"path" mapstructure:"path"`

	// Profile namespaces keys so several accounts can share a backend.
	Profile string `yaml:"profile" mapstructure:"profile"`

	// EncryptionKey enables encryption of stored values when set.
	EncryptionKey string `yaml:"encryption_key" mapstructure:"encryption_key"`

	// Algorithm is "aes-256-gcm" (default) or "chacha20-poly1305".
	Algorithm string `yaml:"algorithm" mapstructure:"algorithm"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.Profile == "" {
		c.Profile = "default"
	}
}

// Validate checks the provider and algorithm names.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderMemory, ProviderFile, ProviderRedis:
	default:
		return fmt.Errorf("storage: unsupported provider %q", c.Provider)
	}
	if _, err := encryption.ParseAlgorithm(c.Algorithm); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}
