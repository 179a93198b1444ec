// Package utils provides utility functions and helpers for the application.
// This file implements a standardized API response system that ensures
// consistent response formats across all adapter endpoints.
package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Response represents a standardized API response.
// All adapter endpoints return responses in this format for consistency.
type Response struct {
	Success bool        `json:"success"`         // Whether the request was successful
	Data    interface{} `json:"data,omitempty"`  // The response data (omitted for error responses)
	Error   *ErrorInfo  `json:"error,omitempty"` // Error information (omitted for successful responses)
	Meta    *MetaInfo   `json:"meta,omitempty"`  // Metadata such as pagination information
}

// ErrorInfo represents error information in the response.
type ErrorInfo struct {
	Code    string `json:"code"`            // A machine-readable error code
	Message string `json:"message"`         // A human-readable error message
	Field   string `json:"field,omitempty"` // The field that failed validation, if any
}

// MetaInfo represents pagination metadata in the response.
type MetaInfo struct {
	Page       int `json:"page"`                  // The current zero-based page index
	PageSize   int `json:"page_size,omitempty"`   // The number of items per page
	TotalItems int `json:"total_items,omitempty"` // The total number of items
	TotalPages int `json:"total_pages,omitempty"` // The total number of pages
}

// JSON sends a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	response := Response{
		Success: statusCode >= 200 && statusCode < 300,
		Data:    data,
	}
	SendJSON(w, statusCode, response)
}

// Paginated sends a JSON response with pagination metadata.
func Paginated(w http.ResponseWriter, statusCode int, data interface{}, meta *MetaInfo) {
	response := Response{
		Success: statusCode >= 200 && statusCode < 300,
		Data:    data,
		Meta:    meta,
	}
	SendJSON(w, statusCode, response)
}

// Error sends an error response with the given status code, error code and message.
func Error(w http.ResponseWriter, statusCode int, code, message string) {
	response := Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
	SendJSON(w, statusCode, response)
}

// ErrorFromAppError sends an error response derived from any error value.
// Non-AppError values are classified through ParseError first.
func ErrorFromAppError(w http.ResponseWriter, err error) {
	appErr := ParseError(err)
	response := Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    appErr.Code,
			Message: appErr.Message,
			Field:   appErr.Field,
		},
	}
	SendJSON(w, appErr.StatusCode, response)
}

// NoContent sends a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// SendJSON marshals and writes the given value with the status code.
func SendJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		// The status line is already written, all we can do is log
		if !errors.Is(err, http.ErrHandlerTimeout) {
			log.Error().Err(err).Msg("Failed to encode JSON response")
		}
	}
}
