package errors

import (
	stderrors "errors"
)

// ErrorBody is the JSON shape used when an AppError is printed for users.
type ErrorBody struct {
	Code      ErrorCode      `json:"code" yaml:"code"`
	Message   string         `json:"message" yaml:"message"`
	Status    int            `json:"status" yaml:"status"`
	Retryable bool           `json:"retryable" yaml:"retryable"`
	Details   map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

// ToBody converts an AppError to an ErrorBody for serialization.
func (e *AppError) ToBody() ErrorBody {
	return ErrorBody{
		Code:      e.Code,
		Message:   e.Message,
		Status:    e.HTTPStatus,
		Retryable: e.Retryable,
		Details:   e.Details,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
