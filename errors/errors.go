package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the status reported by the API, 408 for timeouts and
	// 0 when no response was received.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// FromResponse classifies a failed API outcome. status follows the client
// convention: 0 for transport failures, 408 for client-side timeouts,
// otherwise the HTTP status returned by the API. The message is kept as
// reported so callers can show it unchanged.
func FromResponse(status int, message string) *AppError {
	var code ErrorCode
	switch {
	case status == 0:
		code = ErrCodeConnectionFailed
	case status == http.StatusRequestTimeout:
		code = ErrCodeTimeout
	case status == http.StatusUnauthorized:
		code = ErrCodeUnauthorized
	case status == http.StatusForbidden:
		code = ErrCodeForbidden
	case status == http.StatusNotFound:
		code = ErrCodeNotFound
	case status == http.StatusConflict:
		code = ErrCodeConflict
	case status == http.StatusTooManyRequests:
		code = ErrCodeRateLimited
	case status == http.StatusServiceUnavailable:
		code = ErrCodeServiceUnavailable
	case status >= 400 && status < 500:
		code = ErrCodeInvalidInput
	case status >= 500:
		code = ErrCodeExternalService
	default:
		code = ErrCodeInternal
	}
	return New(code, message, status)
}

// --- Common Error Constructors ---

// ConnectionFailed creates a new AppError for a request that never reached the API.
func ConnectionFailed(message string) *AppError {
	return New(ErrCodeConnectionFailed, message, 0)
}

// Timeout creates a new AppError for a request that timed out.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "Request timeout. Please try again.",
		HTTPStatus: http.StatusRequestTimeout, Retryable: true,
		Details: map[string]any{"operation": operation},
	}
}

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Retryable: false, Details: details,
	}
}

// Validation creates a new AppError for input rejected before dispatch.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// Unauthorized creates a new AppError for unauthorized access.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return &AppError{
		Code: ErrCodeUnauthorized, Message: reason,
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// Storage creates a new AppError for a durable storage failure.
func Storage(op string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeStorage, Message: fmt.Sprintf("Local storage failed during %s.", op),
		Retryable: false, Cause: cause,
		Details: map[string]any{"operation": op},
	}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Retryable: false, Cause: cause,
	}
}
