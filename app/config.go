package app

import (
	"fmt"

	"github.com/kbukum/storefront/config"
	"github.com/kbukum/storefront/httpclient"
	"github.com/kbukum/storefront/observability"
	"github.com/kbukum/storefront/redis"
	"github.com/kbukum/storefront/storage"
)

// ServiceName is the config and env file lookup name.
const ServiceName = "storefront"

// Config is the storefront client configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	API       httpclient.Config    `yaml:"api" mapstructure:"api"`
	Storage   storage.Config       `yaml:"storage" mapstructure:"storage"`
	Redis     redis.Config         `yaml:"redis" mapstructure:"redis"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// GetServiceConfig returns the embedded base configuration.
func (c *Config) GetServiceConfig() *config.ServiceConfig {
	return &c.ServiceConfig
}

func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.API.ApplyDefaults()
	c.Storage.ApplyDefaults()
	if c.Storage.Provider == storage.ProviderRedis {
		c.Redis.ApplyDefaults()
	}
	if c.Telemetry.Enabled {
		c.Telemetry.ApplyDefaults()
	}
}

func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("config.api: %w", err)
	}
	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("config.storage: %w", err)
	}
	if c.Storage.Provider == storage.ProviderRedis {
		if err := c.Redis.Validate(); err != nil {
			return fmt.Errorf("config.redis: %w", err)
		}
	}
	if err := c.Telemetry.Validate(); err != nil {
		return fmt.Errorf("config.telemetry: %w", err)
	}
	return nil
}

// Defaults seeds every section so that environment variables such as
// API_BASE_URL or STORAGE_PROVIDER bind to it.
func Defaults() map[string]any {
	return map[string]any{
		"name":                    ServiceName,
		"environment":             "development",
		"logging.level":           "warn",
		"logging.format":          "console",
		"api.base_url":            httpclient.DefaultBaseURL,
		"api.timeout":             "5s",
		"api.request_id":          true,
		"api.drop_expired_tokens": true,
		"storage.provider":        storage.DefaultProvider,
		"storage.profile":         "default",
		"redis.addr":              "localhost:6379",
		"telemetry.enabled":       false,
	}
}

// Load reads configuration from configFile, or from the standard search
// paths when empty, layered over Defaults and the environment.
func Load(configFile string, opts ...config.LoaderOption) (*Config, error) {
	cfg := &Config{}
	opts = append([]config.LoaderOption{config.WithDefaults(Defaults())}, opts...)
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if err := config.LoadConfig(ServiceName, cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}
