package api

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by every call when the client has no backend URL.
var ErrNotConfigured = errors.New("backend URL is not configured")

// StatusError is a response outside the 2xx range.
type StatusError struct {
	Op         string
	StatusCode int
	// Message is the backend's "error" field, when it sent one.
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s failed (%d): %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s failed (%d)", e.Op, e.StatusCode)
}

// TransportError means the request never produced an HTTP response:
// no connectivity, DNS failure, timeout or cancellation.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// errorBody is the error envelope the backend writes.
type errorBody struct {
	Error string `json:"error"`
}
