// Package errs defines the error shapes shown to visitors and the admin.
//
// Handlers turn any error into an *HTTPError before rendering so that
// validation failures keep their field messages and everything else becomes a
// generic message.
package errs

import (
	"errors"
	"net/http"
	"strings"
)

// FieldError is a validation failure on one form field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the error type rendered by handlers.
type HTTPError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
		Errors:  e.Errors,
	}
}

// Field returns the message for field, or "". It is safe on a nil error so
// templates can call it unconditionally.
func (e *HTTPError) Field(field string) string {
	if e == nil {
		return ""
	}
	for _, fe := range e.Errors {
		if fe.Field == field {
			return fe.Error
		}
	}
	return ""
}

func codeFor(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

func NewBadRequestError(message string, fields []FieldError) *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusBadRequest),
		Message: message,
		Status:  http.StatusBadRequest,
		Errors:  fields,
	}
}

func NewUnauthorizedError(message string) *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusUnauthorized),
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusNotFound),
		Message: message,
		Status:  http.StatusNotFound,
	}
}

func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusTooManyRequests),
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

// NewInternalServerError hides the cause behind message.
func NewInternalServerError(message string) *HTTPError {
	if message == "" {
		message = http.StatusText(http.StatusInternalServerError)
	}
	return &HTTPError{
		Code:    codeFor(http.StatusInternalServerError),
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}

func NewServiceUnavailableError(message string) *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusServiceUnavailable),
		Message: message,
		Status:  http.StatusServiceUnavailable,
	}
}

// From returns err as an *HTTPError, using fallback for anything else.
func From(err error, fallback string) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return NewInternalServerError(fallback)
}

// IsValidation reports whether err is a 400 with field errors or message.
func IsValidation(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusBadRequest
}
