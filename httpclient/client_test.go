package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/storefront/logger"
)

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithLogger(logger.Nop())}, opts...)
	c, err := New(Config{BaseURL: baseURL}, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func TestClient_Call_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/api/public/products/42" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %q", ct)
		}
		jsonHandler(200, `{"id":"42","name":"Mug"}`)(w, r)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/api")
	resp := c.Call(context.Background(), "/public/products/42", CallOptions{})

	if resp.Status < 200 || resp.Status > 299 {
		t.Errorf("expected 2xx, got %d", resp.Status)
	}
	if resp.Error != "" {
		t.Errorf("expected no error, got %q", resp.Error)
	}
	if !strings.Contains(string(resp.Data), `"Mug"`) {
		t.Errorf("expected data to contain Mug, got %s", resp.Data)
	}
	if resp.Request == nil || resp.Request.URL != srv.URL+"/api/public/products/42" {
		t.Errorf("expected dispatched request to be recorded, got %+v", resp.Request)
	}
}

func TestClient_Call_PostBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["email"] != "a@b.co" {
			t.Errorf("unexpected body %v", body)
		}
		jsonHandler(201, `{"ok":true}`)(w, r)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	resp := c.Call(context.Background(), "/auth/login", CallOptions{
		Method: http.MethodPost,
		Body:   map[string]string{"email": "a@b.co"},
	})
	if resp.Status != 201 || resp.Error != "" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestClient_Call_HeaderMerge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Store"); got != "eu" {
			t.Errorf("expected configured header, got %q", got)
		}
		if got := r.Header.Get("X-Trace"); got != "call" {
			t.Errorf("expected caller header, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/vnd.api+json" {
			t.Errorf("caller header should override default, got %q", got)
		}
		w.WriteHeader(204)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL, Headers: map[string]string{"x-store": "eu"}}, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp := c.Call(context.Background(), "/", CallOptions{Headers: map[string]string{
		"X-Trace":      "call",
		"content-type": "application/vnd.api+json",
	}})
	if resp.Error != "" {
		t.Fatalf("unexpected error %q", resp.Error)
	}
}

func TestClient_Call_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp := newTestClient(t, srv.URL).Call(context.Background(), "/public/cart", CallOptions{Method: http.MethodDelete})
	if resp.Status != 204 {
		t.Errorf("expected 204, got %d", resp.Status)
	}
	if resp.Data != nil || resp.Error != "" {
		t.Errorf("expected neither data nor error, got %+v", resp)
	}
}

func TestClient_Call_HTTPErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"server message", 404, `{"message":"Product not found"}`, "Product not found"},
		{"no message field", 400, `{"error":"bad"}`, "HTTP 400: Bad Request"},
		{"malformed body", 500, `<html>oops</html>`, "HTTP 500: Internal Server Error"},
		{"empty body", 503, ``, "HTTP 503: Service Unavailable"},
		{"empty message", 409, `{"message":""}`, "HTTP 409: Conflict"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(jsonHandler(tc.status, tc.body))
			defer srv.Close()

			resp := newTestClient(t, srv.URL).Call(context.Background(), "/x", CallOptions{})
			if resp.Status != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, resp.Status)
			}
			if resp.Error != tc.wantErr {
				t.Errorf("expected error %q, got %q", tc.wantErr, resp.Error)
			}
			if resp.Data != nil {
				t.Errorf("expected no data, got %s", resp.Data)
			}
		})
	}
}

func TestClient_Call_InvalidSuccessBody(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(200, `{"id":`))
	defer srv.Close()

	resp := newTestClient(t, srv.URL).Call(context.Background(), "/x", CallOptions{})
	if resp.Status != 0 {
		t.Errorf("expected status 0, got %d", resp.Status)
	}
	if !strings.HasPrefix(resp.Error, "invalid response body") {
		t.Errorf("unexpected error %q", resp.Error)
	}
}

func TestClient_Call_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	start := time.Now()
	resp := c.Call(context.Background(), "/slow", CallOptions{Timeout: 100 * time.Millisecond})

	if resp.Status != http.StatusRequestTimeout {
		t.Errorf("expected 408, got %d", resp.Status)
	}
	lower := strings.ToLower(resp.Error)
	if !strings.Contains(lower, "timeout") || !strings.Contains(lower, "try again") {
		t.Errorf("unexpected timeout message %q", resp.Error)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("timeout took too long: %v", elapsed)
	}
	if !IsTimeout(resp) {
		t.Error("IsTimeout should report true")
	}
}

func TestClient_Call_ConfigTimeoutDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp := c.Call(context.Background(), "/", CallOptions{}); resp.Status != 408 {
		t.Errorf("expected 408 from configured timeout, got %d", resp.Status)
	}
}

func TestClient_Call_ParentCancelIsNotTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	resp := newTestClient(t, srv.URL).Call(ctx, "/", CallOptions{Timeout: 5 * time.Second})
	if resp.Status != 0 {
		t.Errorf("expected status 0, got %d", resp.Status)
	}
	if !strings.Contains(resp.Error, "context canceled") {
		t.Errorf("expected cancellation text, got %q", resp.Error)
	}
}

func TestClient_Call_NetworkError(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(200, `{}`))
	url := srv.URL
	srv.Close()

	resp := newTestClient(t, url).Call(context.Background(), "/", CallOptions{})
	if resp.Status != 0 {
		t.Errorf("expected status 0, got %d", resp.Status)
	}
	if resp.Error == "" {
		t.Error("expected a network error message")
	}
	if strings.Contains(resp.Error, url) {
		t.Errorf("message should not repeat the URL: %q", resp.Error)
	}
	if !IsNetworkError(resp) || !IsRetryable(resp) {
		t.Error("expected a retryable network error")
	}
}

func TestClient_Call_BodyEncodeError(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")
	resp := c.Call(context.Background(), "/", CallOptions{Method: http.MethodPost, Body: make(chan int)})
	if resp.Status != 0 || !strings.Contains(resp.Error, "encode request body") {
		t.Errorf("unexpected response %+v", resp)
	}
	if resp.Request != nil {
		t.Error("nothing should have been dispatched")
	}
}

func TestClient_BearerTokenPropagation(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(204)
	}))
	defer srv.Close()

	tokens := NewStaticToken("test-token")
	c := newTestClient(t, srv.URL, WithTokenSource(tokens))

	c.Call(context.Background(), "/public/orders", CallOptions{})
	if got != "Bearer test-token" {
		t.Errorf("expected bearer header, got %q", got)
	}

	_ = tokens.ClearToken()
	c.Call(context.Background(), "/public/orders", CallOptions{})
	if got != "" {
		t.Errorf("expected no Authorization header without a token, got %q", got)
	}
}

func TestClient_UnauthorizedClearsToken(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(401, `{"message":"Token expired"}`))
	defer srv.Close()

	tokens := NewStaticToken("stale")
	c := newTestClient(t, srv.URL, WithTokenSource(tokens))

	resp := c.Call(context.Background(), "/public/orders", CallOptions{})
	if resp.Status != 401 || resp.Error != "Token expired" {
		t.Errorf("unexpected response %+v", resp)
	}
	if tokens.Token() != "" {
		t.Errorf("expected token to be cleared, still %q", tokens.Token())
	}
}

func TestClient_ForbiddenKeepsToken(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(403, `{}`))
	defer srv.Close()

	tokens := NewStaticToken("valid")
	newTestClient(t, srv.URL, WithTokenSource(tokens)).Call(context.Background(), "/", CallOptions{})
	if tokens.Token() != "valid" {
		t.Error("403 must not clear the token")
	}
}

func TestPipeline_RequestOrder(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("X-Chain")
		w.WriteHeader(204)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, WithoutDefaultInterceptors())
	var bSawA bool
	c.Pipeline().UseRequest(func(_ context.Context, req RequestConfig) (RequestConfig, error) {
		req = req.Clone()
		req.SetHeader("X-Chain", "A")
		return req, nil
	})
	c.Pipeline().UseRequest(func(_ context.Context, req RequestConfig) (RequestConfig, error) {
		bSawA = req.Header("X-Chain") == "A"
		req = req.Clone()
		req.SetHeader("X-Chain", req.Header("X-Chain")+"B")
		return req, nil
	})

	c.Call(context.Background(), "/", CallOptions{})
	if !bSawA {
		t.Error("B should observe A's modification")
	}
	if seen != "AB" {
		t.Errorf("expected header AB, got %q", seen)
	}
}

func TestPipeline_ResponseOrder(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(200, `{}`))
	defer srv.Close()

	c := newTestClient(t, srv.URL, WithoutDefaultInterceptors())
	var order []string
	c.Pipeline().UseResponse(
		func(_ context.Context, r Response) Response { order = append(order, "first"); r.Status = 299; return r },
		func(_ context.Context, r Response) Response {
			order = append(order, "second")
			if r.Status != 299 {
				t.Errorf("second should see first's rewrite, got %d", r.Status)
			}
			return r
		},
	)

	resp := c.Call(context.Background(), "/", CallOptions{})
	if strings.Join(order, ",") != "first,second" {
		t.Errorf("unexpected order %v", order)
	}
	if resp.Status != 299 {
		t.Errorf("caller should get the rewritten response, got %d", resp.Status)
	}
}

func TestPipeline_InterceptorErrorAborts(t *testing.T) {
	dispatched := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dispatched = true
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, WithoutDefaultInterceptors())
	c.Pipeline().UseRequest(func(context.Context, RequestConfig) (RequestConfig, error) {
		return RequestConfig{}, errors.New("token refresh failed")
	})
	var responseRan bool
	c.Pipeline().UseResponse(func(_ context.Context, r Response) Response { responseRan = true; return r })

	resp := c.Call(context.Background(), "/", CallOptions{})
	if dispatched {
		t.Error("request should not be dispatched")
	}
	if resp.Status != 0 || resp.Error != "token refresh failed" {
		t.Errorf("unexpected response %+v", resp)
	}
	if !responseRan {
		t.Error("response interceptors should still run")
	}
}

func TestPipeline_ClearRemovesDefaults(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(401)
	}))
	defer srv.Close()

	tokens := NewStaticToken("t")
	c := newTestClient(t, srv.URL, WithTokenSource(tokens))
	if req, resp := c.Pipeline().Len(); req != 1 || resp != 1 {
		t.Fatalf("expected 1/1 default interceptors, got %d/%d", req, resp)
	}
	c.Pipeline().Clear()

	c.Call(context.Background(), "/", CallOptions{})
	if got != "" {
		t.Errorf("expected no bearer after Clear, got %q", got)
	}
	if tokens.Token() != "t" {
		t.Error("401 interceptor should be gone after Clear")
	}
}

func TestPipeline_IsolatedPerClient(t *testing.T) {
	a := newTestClient(t, "http://localhost:1", WithoutDefaultInterceptors())
	b := newTestClient(t, "http://localhost:1", WithoutDefaultInterceptors())
	a.Pipeline().UseRequest(RequestID())
	if n, _ := b.Pipeline().Len(); n != 0 {
		t.Errorf("clients must not share interceptors, b has %d", n)
	}
}

func TestPipeline_ConcurrentRegistration(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(200, `{}`))
	defer srv.Close()

	c := newTestClient(t, srv.URL, WithoutDefaultInterceptors())
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Pipeline().UseRequest(func(_ context.Context, r RequestConfig) (RequestConfig, error) { return r, nil })
		}()
		go func() {
			defer wg.Done()
			if resp := c.Call(context.Background(), "/", CallOptions{}); resp.Error != "" {
				t.Errorf("unexpected error %q", resp.Error)
			}
		}()
	}
	wg.Wait()
	if n, _ := c.Pipeline().Len(); n != 10 {
		t.Errorf("expected 10 interceptors, got %d", n)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New(Config{BaseURL: "ftp://example.com"}); err == nil {
		t.Error("expected error for non-http base url")
	}
	if _, err := New(Config{TLS: &TLSConfig{CertFile: "c.pem"}}); err == nil {
		t.Error("expected error for cert without key")
	}
}

func TestNew_Defaults(t *testing.T) {
	c, err := New(Config{}, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Config().BaseURL != DefaultBaseURL {
		t.Errorf("expected default base url, got %q", c.Config().BaseURL)
	}
	if c.Config().Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", c.Config().Timeout)
	}
}

func TestJoinURL(t *testing.T) {
	tests := []struct{ base, endpoint, want string }{
		{"http://h/api", "/public/cart", "http://h/api/public/cart"},
		{"http://h/api/", "public/cart", "http://h/api/public/cart"},
		{"http://h/api", "", "http://h/api"},
		{"http://h/api", "https://other/x", "https://other/x"},
	}
	for _, tc := range tests {
		if got := joinURL(tc.base, tc.endpoint); got != tc.want {
			t.Errorf("joinURL(%q, %q) = %q, want %q", tc.base, tc.endpoint, got, tc.want)
		}
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		resp Response
		want bool
	}{
		{Response{Status: 200}, false},
		{Response{Status: 0, Error: "x"}, true},
		{Response{Status: 408, Error: TimeoutMessage}, true},
		{Response{Status: 429, Error: "slow down"}, true},
		{Response{Status: 502, Error: "bad gateway"}, true},
		{Response{Status: 404, Error: "missing"}, false},
	}
	for _, tc := range tests {
		if got := IsRetryable(tc.resp); got != tc.want {
			t.Errorf("IsRetryable(%+v) = %v, want %v", tc.resp, got, tc.want)
		}
	}
}
