package errors

import (
	"fmt"
	"net/http"
)

// AppError is an application error carrying an HTTP status and a stable
// machine-readable code.
type AppError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// WithDetails attaches details to the error and returns it.
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// New creates an application error with an explicit status code.
func New(statusCode int, code, message string) *AppError {
	return &AppError{StatusCode: statusCode, Code: code, Message: message}
}

// NewBadRequestError creates a 400 Bad Request error.
func NewBadRequestError(code, message string) *AppError {
	return New(http.StatusBadRequest, code, message)
}

// NewUnauthorizedError creates a 401 Unauthorized error.
func NewUnauthorizedError(code, message string) *AppError {
	return New(http.StatusUnauthorized, code, message)
}

// NewForbiddenError creates a 403 Forbidden error.
func NewForbiddenError(code, message string) *AppError {
	return New(http.StatusForbidden, code, message)
}

// NewNotFoundError creates a 404 Not Found error.
func NewNotFoundError(code, message string) *AppError {
	return New(http.StatusNotFound, code, message)
}

// NewInternalServerError creates a 500 Internal Server Error.
func NewInternalServerError(code, message string) *AppError {
	return New(http.StatusInternalServerError, code, message)
}

// FromError converts any error to an AppError. Unexpected errors become a
// 500 with a generic message; the original text is never surfaced to the
// caller, only logged by the handler middleware.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewInternalServerError("INTERNAL_ERROR", "An unexpected error occurred")
}

// GetStatusCode extracts the HTTP status from an error, defaulting to 500.
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// GetErrorCode extracts the code from an error.
func GetErrorCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "INTERNAL_ERROR"
}
