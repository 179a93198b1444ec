package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvornik/boorubot/internal/models"
)

func TestFlexInt64_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
	}{
		{name: "number", input: `42`, expected: 42},
		{name: "negative number", input: `-7`, expected: -7},
		{name: "numeric string", input: `"123"`, expected: 123},
		{name: "padded numeric string", input: `" 99 "`, expected: 99},
		{name: "empty string", input: `""`, expected: 0},
		{name: "null", input: `null`, expected: 0},
		{name: "garbage string", input: `"abc"`, expected: 0},
		{name: "float", input: `3.9`, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f models.FlexInt64
			err := json.Unmarshal([]byte(tt.input), &f)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f.Int64())
		})
	}
}

func TestFlexString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "string", input: `"safe"`, expected: "safe"},
		{name: "null", input: `null`, expected: ""},
		{name: "number", input: `17`, expected: "17"},
		{name: "boolean", input: `true`, expected: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f models.FlexString
			err := json.Unmarshal([]byte(tt.input), &f)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f.String())
		})
	}
}

func TestPost_DecodesMixedFieldTypes(t *testing.T) {
	// The same deployment may emit id as a number and score as a string
	body := `{"id": "12345", "file_url": "https://img.example/a.jpg", "width": 800, "height": "600", "score": null, "rating": "safe", "tags": "cat cute"}`

	var post models.Post
	err := json.Unmarshal([]byte(body), &post)
	require.NoError(t, err)

	assert.Equal(t, int64(12345), post.ID.Int64())
	assert.Equal(t, int64(800), post.Width.Int64())
	assert.Equal(t, int64(600), post.Height.Int64())
	assert.Equal(t, int64(0), post.Score.Int64())
	assert.Equal(t, "safe", post.Rating.String())
	assert.Equal(t, []string{"cat", "cute"}, post.TagList())
}
