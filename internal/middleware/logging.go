// Package middleware provides HTTP middleware for the boorubot API: request
// correlation, request logging and panic recovery.
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dvornik/boorubot/internal/constants"
	"github.com/dvornik/boorubot/internal/utils"
)

// contextKey is a private type for context values set by this package.
type contextKey string

const requestIDKey contextKey = constants.RequestIDContextKey

// RequestID assigns each request a correlation ID, honoring one supplied by
// the client, and echoes it in the response headers.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(constants.RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			w.Header().Set(constants.RequestIDHeader, requestID)

			ctx := context.WithValue(r.Context(), requestIDKey, requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRequestID returns the correlation ID assigned to the request, if any.
func GetRequestID(r *http.Request) (string, bool) {
	requestID, ok := r.Context().Value(requestIDKey).(string)
	return requestID, ok
}

// statusWriter captures the status code written to the response.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// Logging logs every request with its correlation ID, status and latency.
func Logging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			requestID, _ := GetRequestID(r)
			utils.LogHTTPRequest(
				requestID,
				r.Method,
				r.URL.Path,
				r.RemoteAddr,
				sw.status,
				time.Since(start),
			)
		})
	}
}
