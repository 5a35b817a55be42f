// Package httpclient is the storefront's JSON API client.
//
// Every call resolves to a Response and never to a Go error: HTTP failures,
// timeouts (status 408) and transport failures (status 0) all surface in
// Response.Error. Each Client owns an interceptor Pipeline; request
// interceptors rewrite the outgoing RequestConfig and response interceptors
// rewrite the Response, both in registration order.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "http://localhost:8080/api",
//	}, httpclient.WithTokenSource(tokens))
//
//	resp := httpclient.Get[model.Product](ctx, client, "/public/products/42")
//	if resp.Error != "" {
//	    return resp.Err()
//	}
//
// # Interceptors
//
//	client.Pipeline().UseRequest(httpclient.RequestID())
//	client.Pipeline().UseResponse(httpclient.LogCalls(log))
//
// New installs two defaults when a TokenSource is given: BearerAuth first
// in the request chain and ClearTokenOnUnauthorized first in the response
// chain.
package httpclient
