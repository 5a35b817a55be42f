package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kbukum/storefront/logger"
)

// Client issues JSON calls against the storefront API.
type Client struct {
	httpClient *http.Client
	config     Config
	pipeline   *Pipeline
	tokens     TokenSource
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	tokens     TokenSource
	log        *logger.Logger
	transport  http.RoundTripper
	noDefaults bool
}

// WithTokenSource installs the default bearer and 401 interceptors over ts.
func WithTokenSource(ts TokenSource) Option {
	return func(o *clientOptions) { o.tokens = ts }
}

// WithLogger sets the client logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *clientOptions) { o.log = l }
}

// WithTransport replaces the HTTP transport. TLS settings are ignored.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) { o.transport = rt }
}

// WithoutDefaultInterceptors starts the client with an empty pipeline.
func WithoutDefaultInterceptors() Option {
	return func(o *clientOptions) { o.noDefaults = true }
}

// New creates a client. Defaults are applied to cfg before validation.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.WithComponent("httpclient")
	}

	transport := o.transport
	if transport == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			t.TLSClientConfig = tlsCfg
		}
		transport = t
	}
	if cfg.Instrument {
		instrumented, err := newInstrumentedTransport(transport)
		if err != nil {
			return nil, err
		}
		transport = instrumented
	}

	c := &Client{
		// No client-level timeout: each call arms its own deadline.
		httpClient: &http.Client{Transport: transport},
		config:     cfg,
		pipeline:   &Pipeline{},
		tokens:     o.tokens,
		log:        o.log,
	}

	if !o.noDefaults {
		c.installDefaults()
	}
	return c, nil
}

func (c *Client) installDefaults() {
	if c.tokens != nil {
		if c.config.DropExpiredTokens {
			c.pipeline.UseRequest(DropExpiredToken(c.tokens, c.log))
		}
		c.pipeline.UseRequest(BearerAuth(c.tokens))
		c.pipeline.UseResponse(ClearTokenOnUnauthorized(c.tokens, c.log))
	}
	if c.config.RequestID {
		c.pipeline.UseRequest(RequestID())
	}
	if c.config.LogCalls {
		c.pipeline.UseResponse(LogCalls(c.log))
	}
}

// Pipeline returns the client's interceptor pipeline.
func (c *Client) Pipeline() *Pipeline {
	return c.pipeline
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.config
}

// Call performs one request against endpoint, which is joined to the base
// URL. It never returns a Go error; see Response.
func (c *Client) Call(ctx context.Context, endpoint string, opts CallOptions) Response {
	reqChain, respChain := c.pipeline.snapshot()

	req, err := c.buildRequest(endpoint, opts)
	if err != nil {
		return runResponse(ctx, respChain, Response{Error: err.Error(), Status: 0})
	}

	req, err = runRequest(ctx, reqChain, req)
	if err != nil {
		return runResponse(ctx, respChain, Response{Error: errorText(err), Status: 0})
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = c.config.Timeout
	}
	resp := c.dispatch(ctx, req, timeout)
	return runResponse(ctx, respChain, resp)
}

// buildRequest merges headers and encodes the body.
func (c *Client) buildRequest(endpoint string, opts CallOptions) (RequestConfig, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	req := RequestConfig{
		URL:     joinURL(c.config.BaseURL, endpoint),
		Method:  strings.ToUpper(method),
		Headers: make(map[string]string, len(c.config.Headers)+len(opts.Headers)+1),
	}
	req.SetHeader("Content-Type", "application/json")
	for k, v := range c.config.Headers {
		req.SetHeader(k, v)
	}
	for k, v := range opts.Headers {
		req.SetHeader(k, v)
	}

	if opts.Body != nil {
		body, err := encodeBody(opts.Body)
		if err != nil {
			return req, fmt.Errorf("encode request body: %w", err)
		}
		req.Body = body
	}
	return req, nil
}

func (c *Client) dispatch(ctx context.Context, req RequestConfig, timeout time.Duration) Response {
	callCtx, cancel := context.WithTimeoutCause(ctx, timeout, errCallTimeout)
	defer cancel()

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(callCtx, req.Method, req.URL, body)
	if err != nil {
		return Response{Error: errorText(err), Status: 0, Request: &req}
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		resp := transportFailure(callCtx, err)
		resp.Request, resp.Duration = &req, time.Since(start)
		return resp
	}
	raw, err := io.ReadAll(httpResp.Body)
	_ = httpResp.Body.Close()
	// Disarm the deadline before the body is interpreted.
	cancel()
	if err != nil {
		resp := transportFailure(callCtx, err)
		resp.Request, resp.Duration = &req, time.Since(start)
		return resp
	}

	resp := interpret(httpResp, raw)
	resp.Request, resp.Duration = &req, time.Since(start)
	return resp
}

// interpret turns a received response into a Response.
func interpret(httpResp *http.Response, raw []byte) Response {
	status := httpResp.StatusCode
	if status < 200 || status >= 300 {
		return Response{Error: errorMessage(httpResp, raw), Status: status}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return Response{Status: status}
	}
	var data json.RawMessage
	if err := json.Unmarshal(raw, &data); err != nil {
		return Response{Error: fmt.Sprintf("invalid response body: %v", err), Status: 0}
	}
	return Response{Data: data, Status: status}
}

func encodeBody(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	default:
		return json.Marshal(v)
	}
}

// joinURL appends endpoint to base. Absolute endpoints are used as is.
func joinURL(base, endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if endpoint == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(endpoint, "/")
}

// errorText unwraps *url.Error so messages do not repeat the method and URL.
func errorText(err error) string {
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		err = ue.Err
	}
	return err.Error()
}
