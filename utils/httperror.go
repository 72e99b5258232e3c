package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is an error that carries the HTTP status it should surface as.
type HTTPError struct {
	Status  int
	Code    string
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NotFound reports a missing record.
func NotFound(message string) *HTTPError {
	return &HTTPError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: message}
}

// Forbidden reports a rejected credential or account state.
func Forbidden(message string) *HTTPError {
	return &HTTPError{Status: http.StatusForbidden, Code: "FORBIDDEN", Message: message}
}

// BadRequest reports malformed or incomplete input.
func BadRequest(message string) *HTTPError {
	return &HTTPError{Status: http.StatusBadRequest, Code: "BAD_REQUEST", Message: message}
}

// Conflict reports a uniqueness violation.
func Conflict(message string) *HTTPError {
	return &HTTPError{Status: http.StatusConflict, Code: "CONFLICT", Message: message}
}

// Unauthorized reports a missing or invalid session.
func Unauthorized(message string) *HTTPError {
	return &HTTPError{Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: message}
}

// Internal reports a store failure or unexpected error.
func Internal(message string) *HTTPError {
	return &HTTPError{Status: http.StatusInternalServerError, Code: "INTERNAL_SERVER_ERROR", Message: message}
}

// Wrap returns typed errors unchanged and turns anything else into an
// Internal error whose message is "prefix: original".
func Wrap(err error, prefix string) error {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return Internal(fmt.Sprintf("%s: %s", prefix, err.Error()))
}

// StatusOf returns the HTTP status for err, 500 for untyped errors.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return http.StatusInternalServerError
}

// IsNotFound reports whether err is a typed 404.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}
