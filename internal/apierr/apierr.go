package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries the HTTP status a failure should surface as, together
// with a short machine-readable code and the underlying cause.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(what string) *Error {
	return New(http.StatusNotFound, "not_found", fmt.Errorf("%s not found", what))
}

func Forbidden(reason string) *Error {
	return New(http.StatusForbidden, "forbidden", errors.New(reason))
}

// NotRelated covers an item or detail addressed through a list it does
// not belong to.
func NotRelated(what string) *Error {
	return New(http.StatusBadRequest, "not_related", fmt.Errorf("%s does not belong to the addressed list", what))
}

// Validation covers recoverable form-input failures; the client is
// expected to redisplay the form with the message.
func Validation(msg string) *Error {
	return New(http.StatusBadRequest, "validation_failed", errors.New(msg))
}

func Unauthorized(reason string) *Error {
	return New(http.StatusUnauthorized, "unauthorized", errors.New(reason))
}

// StatusOf extracts the HTTP status from err, defaulting to 500 for
// anything that is not an *Error.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// CodeOf extracts the short code from err, defaulting to internal_error.
func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Code != "" {
		return ae.Code
	}
	return "internal_error"
}
