// Package constants provides shared constant values used throughout the application.
//
// The routes_const.go file defines route paths for the HTTP adapter.
package constants

const (
	// HealthPath is the health check endpoint.
	HealthPath = "/health"

	// VersionPath is the version information endpoint.
	VersionPath = "/version"

	// APIBasePath prefixes all API routes.
	APIBasePath = "/api"
)
