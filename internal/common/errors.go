// File: internal/common/errors.go
package common

import (
	"errors"
	"fmt"
	"net/http"
)

// FieldError describes a single validation failure inside a request body.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// APIError represents a standard structure for API errors. The wire shape is
// { "error": <message>, "details": [...] }.
type APIError struct {
	StatusCode int         `json:"-"`
	Message    string      `json:"error"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("APIError: StatusCode=%d, Message=%s", e.StatusCode, e.Message)
}

func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

// WithDetails returns a copy of the error carrying the given details, leaving
// the shared sentinel untouched.
func (e *APIError) WithDetails(details interface{}) *APIError {
	c := *e
	c.Details = details
	return &c
}

var (
	ErrBadRequest     = NewAPIError(http.StatusBadRequest, "The request is invalid")
	ErrUnauthorized   = NewAPIError(http.StatusUnauthorized, "Unauthorized")
	ErrForbidden      = NewAPIError(http.StatusForbidden, "You do not have permission to access this resource")
	ErrNotFound       = NewAPIError(http.StatusNotFound, "The requested resource could not be found")
	ErrConflict       = NewAPIError(http.StatusConflict, "A conflict occurred with the current state of the resource")
	ErrInternalServer = NewAPIError(http.StatusInternalServerError, "Internal server error")

	// ErrMalformedBody is returned when the request body is not parseable
	// JSON, before any schema validation runs.
	ErrMalformedBody = NewAPIError(http.StatusBadRequest, "Invalid JSON body")

	// ErrNoAuthEmail is returned when a first-time account creation has no
	// usable email on the verified identity. This signals a misconfigured
	// upstream identity flow.
	ErrNoAuthEmail = NewAPIError(http.StatusBadRequest, "No email on auth user")
)

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// NewValidationAPIError builds the 400 envelope for schema validation
// failures, carrying one FieldError per violated field.
func NewValidationAPIError(details []FieldError) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		Message:    "Validation failed",
		Details:    details,
	}
}
