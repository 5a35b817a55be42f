package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Call performs a call and decodes Data into T. A body that does not
// decode into T becomes a status-0 error.
func Call[T any](ctx context.Context, c *Client, endpoint string, opts CallOptions) APIResponse[T] {
	return Decode[T](c.Call(ctx, endpoint, opts))
}

// Decode converts an untyped Response into an APIResponse.
func Decode[T any](resp Response) APIResponse[T] {
	if resp.Error != "" {
		return APIResponse[T]{Error: resp.Error, Status: resp.Status}
	}
	if len(resp.Data) == 0 {
		return APIResponse[T]{Status: resp.Status}
	}
	data := new(T)
	if err := json.Unmarshal(resp.Data, data); err != nil {
		return APIResponse[T]{Error: fmt.Sprintf("invalid response body: %v", err), Status: 0}
	}
	return APIResponse[T]{Data: data, Status: resp.Status}
}

// Get performs a GET and decodes the JSON response into T.
func Get[T any](ctx context.Context, c *Client, endpoint string, opts ...CallOption) APIResponse[T] {
	return Call[T](ctx, c, endpoint, buildOptions(http.MethodGet, nil, opts))
}

// Post performs a POST with a JSON body.
func Post[T any](ctx context.Context, c *Client, endpoint string, body any, opts ...CallOption) APIResponse[T] {
	return Call[T](ctx, c, endpoint, buildOptions(http.MethodPost, body, opts))
}

// Put performs a PUT with a JSON body.
func Put[T any](ctx context.Context, c *Client, endpoint string, body any, opts ...CallOption) APIResponse[T] {
	return Call[T](ctx, c, endpoint, buildOptions(http.MethodPut, body, opts))
}

// Patch performs a PATCH with a JSON body.
func Patch[T any](ctx context.Context, c *Client, endpoint string, body any, opts ...CallOption) APIResponse[T] {
	return Call[T](ctx, c, endpoint, buildOptions(http.MethodPatch, body, opts))
}

// Delete performs a DELETE.
func Delete[T any](ctx context.Context, c *Client, endpoint string, opts ...CallOption) APIResponse[T] {
	return Call[T](ctx, c, endpoint, buildOptions(http.MethodDelete, nil, opts))
}

func buildOptions(method string, body any, opts []CallOption) CallOptions {
	o := CallOptions{Method: method, Body: body}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
