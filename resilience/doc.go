// Package resilience retries storefront API calls.
//
// The HTTP client makes exactly one attempt per call. Callers that want
// more wrap the call in RetryCall, which repeats it with exponential
// backoff and jitter while the outcome is retryable (no response, a
// timeout, 429 or 5xx):
//
//	resp := resilience.RetryCall(ctx, resilience.DefaultRetryConfig(),
//		func(ctx context.Context) httpclient.APIResponse[model.Product] {
//			return svc.GetProductByID(ctx, id)
//		})
package resilience
