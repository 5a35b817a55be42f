package httpclient

import (
	"context"
	"sync"
)

// RequestInterceptor rewrites the outgoing request. Returning an error
// aborts the call with status 0 and the error's message.
type RequestInterceptor func(ctx context.Context, req RequestConfig) (RequestConfig, error)

// ResponseInterceptor rewrites the response before it reaches the caller.
type ResponseInterceptor func(ctx context.Context, resp Response) Response

// Pipeline holds the ordered interceptor lists of one Client. It is safe
// for concurrent use; every call runs against the lists as they were when
// the call started.
type Pipeline struct {
	mu       sync.RWMutex
	request  []RequestInterceptor
	response []ResponseInterceptor
}

// UseRequest appends request interceptors.
func (p *Pipeline) UseRequest(fns ...RequestInterceptor) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.request = append(p.request, fns...)
}

// UseResponse appends response interceptors.
func (p *Pipeline) UseResponse(fns ...ResponseInterceptor) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.response = append(p.response, fns...)
}

// Clear removes every interceptor, defaults included.
func (p *Pipeline) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.request = nil
	p.response = nil
}

// Len returns the number of request and response interceptors.
func (p *Pipeline) Len() (request, response int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.request), len(p.response)
}

func (p *Pipeline) snapshot() ([]RequestInterceptor, []ResponseInterceptor) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	req := make([]RequestInterceptor, len(p.request))
	copy(req, p.request)
	resp := make([]ResponseInterceptor, len(p.response))
	copy(resp, p.response)
	return req, resp
}

func runRequest(ctx context.Context, chain []RequestInterceptor, req RequestConfig) (RequestConfig, error) {
	for _, fn := range chain {
		next, err := fn(ctx, req)
		if err != nil {
			return req, err
		}
		req = next
	}
	return req, nil
}

func runResponse(ctx context.Context, chain []ResponseInterceptor, resp Response) Response {
	for _, fn := range chain {
		resp = fn(ctx, resp)
	}
	return resp
}
