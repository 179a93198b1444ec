// Package constants provides shared constant values used throughout the application.
//
// The timeouts.go file defines timeout durations for servers, upstream
// requests and database operations.
package constants

import "time"

// Server timeouts bound how long the HTTP adapter waits on clients.
const (
	// DefaultReadTimeout is the maximum duration for reading a request.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout is the maximum duration for writing a response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultShutdownTimeout is how long graceful shutdown may take.
	DefaultShutdownTimeout = 15 * time.Second
)

// Upstream timeouts bound calls to the image-board API. Expiry is treated as
// a connection failure by the repository layer.
const (
	// DefaultBooruTimeout is the per-request timeout for upstream calls.
	DefaultBooruTimeout = 15 * time.Second
)

// Database timeouts bound connection management operations.
const (
	// DBConnectTimeout is the maximum duration for establishing the pool.
	DBConnectTimeout = 10 * time.Second

	// DBConnMaxLifetime is the maximum lifetime of a pooled connection.
	DBConnMaxLifetime = 1 * time.Hour

	// DBConnMaxIdleTime is the maximum idle time of a pooled connection.
	DBConnMaxIdleTime = 30 * time.Minute
)
