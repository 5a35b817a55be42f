package resilience

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/storefront/httpclient"
)

func fastConfig(attempts int) RetryConfig {
	return RetryConfig{MaxAttempts: attempts, InitialBackoff: time.Millisecond, MaxBackoff: 5 * time.Millisecond}
}

func TestRetryCall_SucceedsOnFirstAttempt(t *testing.T) {
	calls := 0
	resp := RetryCall(context.Background(), fastConfig(3), func(context.Context) httpclient.APIResponse[string] {
		calls++
		v := "ok"
		return httpclient.APIResponse[string]{Data: &v, Status: 200}
	})
	if !resp.IsSuccess() || *resp.Data != "ok" || calls != 1 {
		t.Errorf("unexpected result %+v after %d calls", resp, calls)
	}
}

func TestRetryCall_RetriesTransientFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"id":"p1"}`))
	}))
	defer srv.Close()

	client, err := httpclient.New(httpclient.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	var retried []int
	cfg := fastConfig(5)
	cfg.OnRetry = func(attempt int, resp httpclient.Response, _ time.Duration) {
		retried = append(retried, resp.Status)
	}

	type product struct{ ID string }
	resp := RetryCall(context.Background(), cfg, func(ctx context.Context) httpclient.APIResponse[product] {
		return httpclient.Get[product](ctx, client, "/products/p1")
	})
	if !resp.IsSuccess() || resp.Data.ID != "p1" {
		t.Fatalf("expected success, got %+v", resp)
	}
	if atomic.LoadInt32(&calls) != 3 || len(retried) != 2 || retried[0] != 503 {
		t.Errorf("expected 3 calls and two 503 retries, got %d %v", calls, retried)
	}
}

func TestRetryCall_DoesNotRetryClientErrors(t *testing.T) {
	for _, status := range []int{400, 401, 404, 409} {
		calls := 0
		resp := RetryCall(context.Background(), fastConfig(3), func(context.Context) httpclient.APIResponse[string] {
			calls++
			return httpclient.APIResponse[string]{Error: "no", Status: status}
		})
		if calls != 1 || resp.Status != status {
			t.Errorf("status %d: expected a single attempt, got %d", status, calls)
		}
	}
}

func TestRetryCall_ReturnsLastFailure(t *testing.T) {
	calls := 0
	resp := RetryCall(context.Background(), fastConfig(3), func(context.Context) httpclient.APIResponse[string] {
		calls++
		return httpclient.APIResponse[string]{Error: "Request timeout. Please try again.", Status: 408}
	})
	if calls != 3 || resp.Status != 408 {
		t.Errorf("expected 3 attempts ending in 408, got %d %d", calls, resp.Status)
	}
}

func TestRetryResponse_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	cfg := RetryConfig{MaxAttempts: 5, InitialBackoff: time.Hour, MaxBackoff: time.Hour}
	cfg.OnRetry = func(int, httpclient.Response, time.Duration) { cancel() }

	resp := RetryResponse(ctx, cfg, func(context.Context) httpclient.Response {
		calls++
		return httpclient.Response{Error: "Network error", Status: 0}
	})
	if calls != 1 || resp.Error != "Network error" {
		t.Errorf("expected one attempt, got %d %+v", calls, resp)
	}
}

func TestCalculateBackoff(t *testing.T) {
	cfg := RetryConfig{InitialBackoff: 100 * time.Millisecond, MaxBackoff: 300 * time.Millisecond, BackoffFactor: 2}
	if got := calculateBackoff(1, cfg); got != 100*time.Millisecond {
		t.Errorf("attempt 1: got %v", got)
	}
	if got := calculateBackoff(2, cfg); got != 200*time.Millisecond {
		t.Errorf("attempt 2: got %v", got)
	}
	if got := calculateBackoff(5, cfg); got != 300*time.Millisecond {
		t.Errorf("expected cap, got %v", got)
	}

	cfg.Jitter = 0.5
	for i := 0; i < 20; i++ {
		got := calculateBackoff(1, cfg)
		if got < 50*time.Millisecond || got > 150*time.Millisecond {
			t.Fatalf("jitter out of range: %v", got)
		}
	}
}
