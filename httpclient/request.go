package httpclient

import (
	"net/http"
	"time"
)

// RequestConfig is the outgoing request as seen by request interceptors.
// Each interceptor returns the config the next one receives.
type RequestConfig struct {
	URL     string
	Method  string
	Headers map[string]string
	// Body is the serialized JSON payload, nil for no body.
	Body []byte
}

// Clone returns a copy whose Headers map can be modified independently.
func (r RequestConfig) Clone() RequestConfig {
	headers := make(map[string]string, len(r.Headers))
	for k, v := range r.Headers {
		headers[k] = v
	}
	r.Headers = headers
	return r
}

// SetHeader sets a header using its canonical name.
func (r *RequestConfig) SetHeader(key, value string) {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[http.CanonicalHeaderKey(key)] = value
}

// Header returns a header by name, case-insensitively.
func (r RequestConfig) Header(key string) string {
	return r.Headers[http.CanonicalHeaderKey(key)]
}

// DelHeader removes a header by name, case-insensitively.
func (r *RequestConfig) DelHeader(key string) {
	delete(r.Headers, http.CanonicalHeaderKey(key))
}

// CallOptions describes a single call.
type CallOptions struct {
	// Method defaults to GET.
	Method string
	// Headers are merged over the client defaults.
	Headers map[string]string
	// Body is JSON-encoded. Nil sends no body.
	Body any
	// Timeout overrides Config.Timeout for this call.
	Timeout time.Duration
}

// CallOption configures CallOptions.
type CallOption func(*CallOptions)

// WithHeader adds a header to the call.
func WithHeader(key, value string) CallOption {
	return func(o *CallOptions) {
		if o.Headers == nil {
			o.Headers = make(map[string]string)
		}
		o.Headers[key] = value
	}
}

// WithTimeout overrides the call timeout.
func WithTimeout(d time.Duration) CallOption {
	return func(o *CallOptions) { o.Timeout = d }
}
