// Package utils provides utility functions and helpers for the application.
// This file configures the global zerolog logger and provides logging helpers
// for HTTP requests, database queries and upstream API calls.
package utils

import (
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dvornik/boorubot/internal/config"
	"github.com/dvornik/boorubot/internal/constants"
)

// InitLogger initializes the application logger with the given configuration
func InitLogger(cfg *config.AppConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Console output in development, JSON everywhere else
	var output io.Writer = os.Stdout
	if strings.ToLower(cfg.Logging.Format) == "console" && !cfg.App.IsProduction() {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	log.Logger = zerolog.New(output).
		With().
		Timestamp().
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("env", cfg.App.Environment).
		Logger()

	log.Info().Msg("Logger initialized")
}

// RequestLogger creates a logger with request-specific context
func RequestLogger(requestID, method, path string) zerolog.Logger {
	return log.With().
		Str(constants.RequestIDContextKey, requestID).
		Str("method", method).
		Str("path", path).
		Logger()
}

// LogHTTPRequest logs an HTTP request handled by the adapter surface
func LogHTTPRequest(requestID, method, path, remoteAddr string, statusCode int, latency time.Duration) {
	// Health checks are only interesting at debug level
	if path == constants.HealthPath && zerolog.GlobalLevel() != zerolog.DebugLevel {
		return
	}

	event := log.Debug()
	if statusCode >= 500 {
		event = log.Error()
	} else if statusCode >= 400 {
		event = log.Warn()
	} else if strings.HasPrefix(path, constants.APIBasePath) {
		event = log.Info()
	}

	event.
		Str(constants.RequestIDContextKey, requestID).
		Str("method", method).
		Str("path", path).
		Str("remote_addr", remoteAddr).
		Int("status", statusCode).
		Dur("latency", latency).
		Msg("HTTP Request")
}

// LogDBQuery logs a database query for debugging
func LogDBQuery(query string, args []interface{}, duration time.Duration, err error) {
	event := log.Debug()
	if err != nil {
		event = log.Error().Err(err)
	}

	event.
		Str("query", query).
		Interface("args", args).
		Dur("duration", duration).
		Msg("Database query executed")
}

// LogUpstreamRequest logs a request made against the image-board API.
// Credential query parameters are redacted before the URL is logged.
func LogUpstreamRequest(requestID, rawURL string, statusCode int, duration time.Duration, err error) {
	event := log.Debug()
	if err != nil {
		event = log.Warn().Err(err)
	}

	event.
		Str(constants.RequestIDContextKey, requestID).
		Str("url", RedactURL(rawURL)).
		Int("status", statusCode).
		Dur("duration", duration).
		Msg("Upstream request")
}

// RedactURL replaces credential query parameter values in a URL string.
// Returns the input unchanged if it cannot be parsed.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	q := u.Query()
	for _, param := range []string{constants.ParamAPIKey, constants.ParamUserID} {
		if q.Has(param) {
			q.Set(param, constants.LogRedactedValue)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// LogError logs an error with context information
func LogError(err error, context map[string]interface{}) {
	event := log.Error().Err(err)
	for key, value := range context {
		event = event.Interface(key, value)
	}
	event.Msg("Error occurred")
}
