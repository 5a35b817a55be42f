package httpclient

import (
	"encoding/json"
	"time"

	apperrors "github.com/kbukum/storefront/errors"
)

// Response is the untyped result of a call. Exactly one of Data and Error
// is set, except for a successful call without a body where both are empty.
type Response struct {
	Data   json.RawMessage
	Error  string
	Status int

	// Request is the config that was dispatched, after request
	// interceptors ran. Nil if the call failed before dispatch.
	Request *RequestConfig
	// Duration covers dispatch through reading the body.
	Duration time.Duration
}

// IsSuccess reports whether the call produced no error.
func (r Response) IsSuccess() bool {
	return r.Error == ""
}

// APIResponse is the typed view of a Response.
type APIResponse[T any] struct {
	Data   *T
	Error  string
	Status int
}

// IsSuccess reports whether the call produced no error.
func (r APIResponse[T]) IsSuccess() bool {
	return r.Error == ""
}

// Err converts a failed response into an *errors.AppError, nil on success.
func (r APIResponse[T]) Err() error {
	if r.Error == "" {
		return nil
	}
	return apperrors.FromResponse(r.Status, r.Error)
}

// Empty is the data type of endpoints that return no body.
type Empty struct{}
