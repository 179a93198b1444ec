package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lib/pq"

	"github.com/dvornik/boorubot/internal/constants"
)

// Custom error types for the application
var (
	ErrNotFound          = errors.New("resource not found")
	ErrBadRequest        = errors.New("invalid request")
	ErrInternalServer    = errors.New("internal server error")
	ErrValidation        = errors.New("validation error")
	ErrDuplicate         = errors.New("duplicate resource")
	ErrConnectionFailure = errors.New("upstream host unreachable")
	ErrUpstream          = errors.New("upstream returned an error")
	ErrUnexpected        = errors.New("unexpected failure")
	ErrPersistence       = errors.New("settings could not be persisted")
)

// AppError represents an application error with additional context
type AppError struct {
	Err        error  // The underlying error
	StatusCode int    // HTTP status code for the adapter surface
	Code       string // Machine-readable error code
	Message    string // User-friendly error message
	DevInfo    string // Additional information for developers
	Field      string // Field related to the error (for validation errors)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the given error and status code
func New(err error, statusCode int, message string) *AppError {
	return &AppError{
		Err:        err,
		StatusCode: statusCode,
		Code:       constants.CodeInternalError,
		Message:    message,
	}
}

// NewValidationError creates a new validation error for a specific field
func NewValidationError(field, message string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		StatusCode: http.StatusBadRequest,
		Code:       constants.CodeValidationError,
		Message:    message,
		Field:      field,
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		StatusCode: http.StatusBadRequest,
		Code:       constants.CodeBadRequest,
		Message:    message,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resourceType string, identifier interface{}) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		StatusCode: http.StatusNotFound,
		Code:       constants.CodeNotFound,
		Message:    fmt.Sprintf("%s with identifier '%v' not found", resourceType, identifier),
	}
}

// NewInternalServerError creates a new internal server error
func NewInternalServerError(err error) *AppError {
	devInfo := ""
	if err != nil {
		devInfo = err.Error()
	}
	return &AppError{
		Err:        ErrInternalServer,
		StatusCode: http.StatusInternalServerError,
		Code:       constants.CodeInternalError,
		Message:    "An internal server error occurred",
		DevInfo:    devInfo,
	}
}

// NewConnectionError creates an error for an unreachable upstream host.
// Timeouts are classified here as well: an expired request deadline is
// indistinguishable from a dead host for the caller.
func NewConnectionError(err error) *AppError {
	devInfo := ""
	if err != nil {
		devInfo = err.Error()
	}
	return &AppError{
		Err:        ErrConnectionFailure,
		StatusCode: http.StatusBadGateway,
		Code:       constants.CodeConnectionFailure,
		Message:    "Could not reach the image board",
		DevInfo:    devInfo,
	}
}

// NewUpstreamError creates an error for a non-2xx upstream HTTP status
func NewUpstreamError(status int, message string) *AppError {
	return &AppError{
		Err:        ErrUpstream,
		StatusCode: http.StatusBadGateway,
		Code:       constants.CodeUpstreamError,
		Message:    fmt.Sprintf("Image board returned status %d", status),
		DevInfo:    message,
	}
}

// NewUnexpectedError wraps anything that is neither a connection nor an
// upstream HTTP failure
func NewUnexpectedError(err error) *AppError {
	devInfo := ""
	if err != nil {
		devInfo = err.Error()
	}
	return &AppError{
		Err:        ErrUnexpected,
		StatusCode: http.StatusInternalServerError,
		Code:       constants.CodeInternalError,
		Message:    "An unexpected failure occurred",
		DevInfo:    devInfo,
	}
}

// NewPersistenceError creates an error for a failed settings write. Unlike
// search failures, this one is surfaced to the user: silent preference loss
// is worse than a visible failure.
func NewPersistenceError(err error) *AppError {
	devInfo := ""
	if err != nil {
		devInfo = err.Error()
	}
	return &AppError{
		Err:        ErrPersistence,
		StatusCode: http.StatusInternalServerError,
		Code:       constants.CodePersistenceFailure,
		Message:    "Your settings could not be saved",
		DevInfo:    devInfo,
	}
}

// ParseError attempts to parse various types of errors into an AppError
func ParseError(err error) *AppError {
	// If it's already an AppError, return it
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	// Check for specific error types
	switch {
	case errors.Is(err, ErrNotFound):
		return NewNotFoundError("Resource", "")
	case errors.Is(err, ErrBadRequest):
		return NewBadRequestError(err.Error())
	case errors.Is(err, ErrValidation):
		return NewValidationError("", err.Error())
	case errors.Is(err, ErrConnectionFailure):
		return NewConnectionError(err)
	case errors.Is(err, ErrUpstream):
		return NewUpstreamError(http.StatusBadGateway, err.Error())
	case errors.Is(err, ErrPersistence):
		return NewPersistenceError(err)
	case errors.Is(err, ErrUnexpected):
		return NewUnexpectedError(err)
	}

	// Check for PostgreSQL-specific errors
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return &AppError{
				Err:        ErrDuplicate,
				StatusCode: http.StatusConflict,
				Code:       constants.CodeBadRequest,
				Message:    "A resource with the same unique identifier already exists",
				DevInfo:    pqErr.Error(),
			}
		case "23502": // not_null_violation
			return &AppError{
				Err:        ErrValidation,
				StatusCode: http.StatusBadRequest,
				Code:       constants.CodeValidationError,
				Message:    fmt.Sprintf("The %s field cannot be empty", pqErr.Column),
				DevInfo:    pqErr.Error(),
				Field:      pqErr.Column,
			}
		}
	}

	// Check for general database-specific error patterns
	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint"):
		return &AppError{
			Err:        ErrDuplicate,
			StatusCode: http.StatusConflict,
			Code:       constants.CodeBadRequest,
			Message:    "A resource with the same unique identifier already exists",
			DevInfo:    err.Error(),
		}
	case strings.Contains(errMsg, "not found") || strings.Contains(errMsg, "no rows"):
		return &AppError{
			Err:        ErrNotFound,
			StatusCode: http.StatusNotFound,
			Code:       constants.CodeNotFound,
			Message:    "The requested resource could not be found",
			DevInfo:    err.Error(),
		}
	}

	// Default to internal server error
	return NewInternalServerError(err)
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode == http.StatusNotFound
	}
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return errors.Is(appErr.Err, ErrValidation)
	}
	return errors.Is(err, ErrValidation)
}

// IsConnectionError checks if an error indicates an unreachable upstream
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrConnectionFailure)
}

// IsUpstreamError checks if an error is a non-2xx upstream response
func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrUpstream)
}

// IsPersistenceError checks if an error is a failed settings write
func IsPersistenceError(err error) bool {
	return errors.Is(err, ErrPersistence)
}

// StatusCode returns the HTTP status code for an error
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// ErrorCode returns the machine-readable code for an error
func ErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != "" {
		return appErr.Code
	}
	return constants.CodeInternalError
}
