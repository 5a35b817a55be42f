package httpclient

import (
	"fmt"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "http://localhost:8080/api"

	defaultTimeout = 5 * time.Second
)

// Config configures the API client.
type Config struct {
	// BaseURL is prepended to every endpoint path.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds each call unless CallOptions.Timeout overrides it. Defaults to 5s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are sent on every call. Caller headers win on conflict.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// TLS configures the transport. Nil uses the system defaults.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// RequestID adds an X-Request-ID header to every call.
	RequestID bool `yaml:"request_id" mapstructure:"request_id"`

	// DropExpiredTokens clears a persisted JWT whose exp has passed
	// instead of sending it.
	DropExpiredTokens bool `yaml:"drop_expired_tokens" mapstructure:"drop_expired_tokens"`

	// LogCalls logs every call at debug level.
	LogCalls bool `yaml:"log_calls" mapstructure:"log_calls"`

	// Instrument wraps the transport with OpenTelemetry spans and metrics.
	Instrument bool `yaml:"instrument" mapstructure:"instrument"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("httpclient: invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("httpclient: base_url must be http or https (got: %q)", c.BaseURL)
	}
	if err := c.TLS.Validate(); err != nil {
		return err
	}
	return nil
}
