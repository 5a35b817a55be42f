package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	// TimeoutMessage is the error of a call that exceeded its timeout.
	TimeoutMessage = "Request timeout. Please try again."
	// NetworkErrorMessage is used when a transport failure carries no text.
	NetworkErrorMessage = "Network error"
)

// errCallTimeout is the cause attached to a call's deadline, so a timeout
// can be told apart from the caller cancelling the parent context.
var errCallTimeout = errors.New("httpclient: call timeout")

// transportFailure classifies an error raised while sending the request or
// reading the body.
func transportFailure(callCtx context.Context, err error) Response {
	if errors.Is(context.Cause(callCtx), errCallTimeout) {
		return Response{Error: TimeoutMessage, Status: http.StatusRequestTimeout}
	}
	msg := errorText(err)
	if strings.TrimSpace(msg) == "" {
		msg = NetworkErrorMessage
	}
	return Response{Error: msg, Status: 0}
}

// errorMessage uses the body's message field, falling back to
// "HTTP <status>: <statusText>". A body that is not JSON counts as {}.
func errorMessage(resp *http.Response, raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	text := statusText(resp)
	if text == "" {
		return fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", resp.StatusCode, text)
}

// statusText prefers the reason phrase the server sent.
func statusText(resp *http.Response) string {
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

// IsTimeout reports whether resp is the result of a call timeout.
func IsTimeout(resp Response) bool {
	return resp.Status == http.StatusRequestTimeout
}

// IsNetworkError reports whether resp failed without an HTTP status.
func IsNetworkError(resp Response) bool {
	return resp.Status == 0 && resp.Error != ""
}

// IsRetryable reports whether repeating the call may succeed: transport
// failures, timeouts, 429 and 5xx.
func IsRetryable(resp Response) bool {
	switch {
	case resp.Error == "":
		return false
	case resp.Status == 0, resp.Status == http.StatusRequestTimeout, resp.Status == http.StatusTooManyRequests:
		return true
	default:
		return resp.Status >= 500
	}
}
