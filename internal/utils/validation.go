// Package utils provides utility functions and helpers for the application.
// This file wires the request validator and JSON body decoding used by the
// HTTP adapter handlers.
package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/dvornik/boorubot/internal/constants"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate
)

// InitValidator initializes the validator
func InitValidator() {
	validate = validator.New()

	// Report json tag names instead of struct field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	log.Info().Msg("Validator initialized")
}

// GetValidator returns the singleton validator instance
func GetValidator() *validator.Validate {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// DecodeJSON decodes a JSON request body into the provided struct with size
// limits and strict field checking.
func DecodeJSON(r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, constants.MaxRequestBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError

		switch {
		case errors.As(err, &syntaxErr):
			return NewBadRequestError(fmt.Sprintf("malformed JSON at position %d", syntaxErr.Offset))
		case errors.As(err, &typeErr):
			return NewValidationError(typeErr.Field, fmt.Sprintf("expected %s", typeErr.Type))
		case errors.Is(err, io.EOF):
			return NewBadRequestError("request body must not be empty")
		default:
			return NewBadRequestError("invalid request body")
		}
	}

	return nil
}

// ValidateStruct validates a struct using the singleton validator and
// converts the first violation into a field-level validation error.
func ValidateStruct(v interface{}) error {
	if err := GetValidator().Struct(v); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			first := validationErrs[0]
			return NewValidationError(first.Field(), fmt.Sprintf("failed on the '%s' rule", first.Tag()))
		}
		return NewBadRequestError("invalid request")
	}
	return nil
}
