// Package errors provides structured error types for the storefront toolkit.
// It maps client-side failure outcomes (HTTP errors, timeouts, transport
// failures) onto machine-readable codes with retryable detection.
package errors
