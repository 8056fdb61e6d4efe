// Package apperror defines the error kinds the HTTP layer knows how to
// translate. Anything else is reported as an internal server error.
package apperror

import (
	"net/http"
	"strings"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a request payload or path parameter is rejected.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// StatusCode implements StatusCoder.
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// UnauthorizedError is returned when the caller cannot be identified.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

// StatusCode implements StatusCoder.
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// NotFoundError is returned when an entity does not exist or is not owned by the caller.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// StatusCode implements StatusCoder.
func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

// StatusCoder is implemented by every error kind in this package.
type StatusCoder interface {
	error
	StatusCode() int
}

func Validation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func ValidationFields(fields []FieldError) *ValidationError {
	return &ValidationError{Message: "Validation failed", Fields: fields}
}

func Unauthorized() *UnauthorizedError {
	return &UnauthorizedError{Message: "Unauthorized"}
}

func NotFound(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}
