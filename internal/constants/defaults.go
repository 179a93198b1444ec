// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits used throughout the
// application. These constants provide sensible defaults for configuration
// settings and establish boundaries for resource usage.
package constants

// Session pagination values define how search results are paged for
// presentation. PostsPerPage is fixed by the presentation contract.
const (
	// PostsPerPage is the number of posts shown per result page.
	PostsPerPage = 5
)

// Default configuration values define fallback settings when not specified in
// configuration files or the environment.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultServerHost is the default HTTP server bind address.
	DefaultServerHost = "0.0.0.0"

	// DefaultDBMaxConnections is the default maximum number of database connections.
	DefaultDBMaxConnections = 20

	// DefaultDBMinConnections is the default minimum number of database connections.
	DefaultDBMinConnections = 5

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"

	// DefaultAppName is the application name used in log context.
	DefaultAppName = "boorubot"

	// DefaultBooruBaseURL is the upstream image-board API base URL.
	DefaultBooruBaseURL = "https://gelbooru.com"

	// DefaultSQLitePath is the default database file for the sqlite3 driver.
	DefaultSQLitePath = "./boorubot.db"
)

// Request body limits protect the HTTP adapter from oversized payloads.
const (
	// MaxRequestBodySize is the maximum accepted request body in bytes.
	MaxRequestBodySize = 1 << 20 // 1 MB
)
