// Package constants provides shared constant values used throughout the application.
//
// The errorcodes.go file defines machine-readable error codes returned in API
// error responses. Clients branch on these codes rather than on messages.
package constants

const (
	// CodeNotFound indicates the requested resource does not exist.
	CodeNotFound = "not_found"

	// CodeBadRequest indicates a malformed or invalid request.
	CodeBadRequest = "bad_request"

	// CodeValidationError indicates a request failed field validation.
	CodeValidationError = "validation_error"

	// CodeInternalError indicates an unexpected server-side failure.
	CodeInternalError = "internal_error"

	// CodePersistenceFailure indicates user settings could not be saved.
	CodePersistenceFailure = "persistence_failure"

	// CodeUpstreamError indicates the image-board API returned an error.
	CodeUpstreamError = "upstream_error"

	// CodeConnectionFailure indicates the image-board API was unreachable.
	CodeConnectionFailure = "connection_failure"

	// CodeServiceUnavailable indicates a failed health check.
	CodeServiceUnavailable = "service_unavailable"
)
