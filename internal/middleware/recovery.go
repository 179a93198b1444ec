package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"github.com/dvornik/boorubot/internal/constants"
	"github.com/dvornik/boorubot/internal/utils"
)

// Recovery recovers from handler panics and returns a 500 response instead
// of tearing down the connection.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					requestID, _ := GetRequestID(r)

					log.Error().
						Str(constants.RequestIDContextKey, requestID).
						Interface("panic", err).
						Str("stack", string(debug.Stack())).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("remote_addr", r.RemoteAddr).
						Msg("Panic recovered in request handler")

					utils.Error(
						w,
						http.StatusInternalServerError,
						constants.CodeInternalError,
						"An unexpected error occurred while processing your request",
					)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
