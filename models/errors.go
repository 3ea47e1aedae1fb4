package models

import (
	"errors"
	"fmt"
)

// ErrNoSession is returned when a gated operation runs without a stored
// session. Callers treat it as terminal: send the user to login, fetch nothing.
var ErrNoSession = errors.New("no session: login required")

// ErrMalformedResponse is returned when the backend answers with a shape the
// client does not recognize.
var ErrMalformedResponse = errors.New("malformed response from server")

// HTTPError is a non-success response from the backend. Message comes from the
// response body's "message" field when present, otherwise it is generic.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// AppError is a custom application error with a stable code.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports invalid local input; no network call was made.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR"
}
