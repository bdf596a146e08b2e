package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error represents a failed call against the marketplace API
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors carrying the same status code, so callers can write
// errors.Is(err, apperrors.ErrUnauthorized).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// FromStatus builds an Error for a non-success response. An empty detail
// falls back to the status text.
func FromStatus(code int, detail string) *Error {
	if detail == "" {
		detail = http.StatusText(code)
	}
	return New(code, detail, nil)
}

// Common error types
var (
	ErrBadRequest         = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized       = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrNotFound           = New(http.StatusNotFound, "Not found", nil)
	ErrValidation         = New(http.StatusUnprocessableEntity, "Validation error", nil)
	ErrInternalServer     = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "Service unavailable", nil)
)
