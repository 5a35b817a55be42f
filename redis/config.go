package redis

import (
	"fmt"
	"time"
)

// Config holds Redis connection configuration.
type Config struct {
	// Addr is the Redis server address (host:port).
	Addr string `yaml:"addr" mapstructure:"addr"`

	// Password is the Redis server password.
	Password string `yaml:"password" mapstructure:"password"`

	// DB is the Redis database number.
	DB int `yaml:"db" mapstructure:"db"`

	// PoolSize is the maximum number of socket connections.
	PoolSize int `yaml:"pool_size" mapstructure:"pool_size"`

	// MaxRetries is the number of command retries on network errors.
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries"`

	DialTimeout  time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`

	// KeyPrefix is prepended to every key. Defaults to "storefront".
	KeyPrefix string `yaml:"key_prefix" mapstructure:"key_prefix"`

	// TTL expires stored keys. Zero keeps them forever.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = "localhost:6379"
	}
	if c.PoolSize <= 0 {
		c.PoolSize = 4
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 5 * time.Second
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 3 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 3 * time.Second
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "storefront"
	}
}

// Validate checks that required fields are present.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("redis addr is required")
	}
	if c.DB < 0 {
		return fmt.Errorf("redis db must be >= 0")
	}
	if c.TTL < 0 {
		return fmt.Errorf("redis ttl must be >= 0")
	}
	return nil
}
