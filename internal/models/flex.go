// Package models provides data structures and operations for the boorubot
// backend. This file defines tolerant JSON scalar types for upstream
// responses: booru deployments disagree on whether numeric fields arrive as
// numbers or strings, and on whether string fields may be null.
package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexInt64 is an int64 that unmarshals from a JSON number, a numeric
// string, null, or an empty string. Unparseable values decode to zero
// rather than failing the whole record.
type FlexInt64 int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt64) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexInt64(n)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		// Some deployments send floats for counts
		var fl float64
		if err := json.Unmarshal(data, &fl); err != nil {
			*f = 0
			return nil
		}
		*f = FlexInt64(int64(fl))
		return nil
	}
	*f = FlexInt64(n)
	return nil
}

// Int64 returns the value as a plain int64.
func (f FlexInt64) Int64() int64 {
	return int64(f)
}

// FlexString is a string that unmarshals from a JSON string, number,
// boolean or null. Null decodes to the empty string.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = ""
			return nil
		}
		*f = FlexString(s)
		return nil
	}

	// Numbers and booleans are kept as their literal text
	*f = FlexString(string(data))
	return nil
}

// String returns the value as a plain string.
func (f FlexString) String() string {
	return string(f)
}
