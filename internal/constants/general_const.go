// Package constants provides shared constant values used throughout the application.
//
// The general_const.go file defines environment names, logging context keys
// and HTTP header names shared between packages.
package constants

// Environment names recognized by the configuration layer.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// Logging context keys keep structured log fields consistent.
const (
	// RequestIDContextKey is the log field for the request correlation ID.
	RequestIDContextKey = "request_id"

	// UserIDContextKey is the log field for the acting user ID.
	UserIDContextKey = "user_id"
)

// HTTP header names used by the adapter surface.
const (
	// RequestIDHeader carries the request correlation ID back to clients.
	RequestIDHeader = "X-Request-ID"
)

// Log field redaction.
const (
	// LogRedactedValue replaces credential values in logged URLs.
	LogRedactedValue = "[REDACTED]"
)
