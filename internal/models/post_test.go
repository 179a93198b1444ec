package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dvornik/boorubot/internal/models"
)

func TestMediaTypeFor(t *testing.T) {
	tests := []struct {
		name     string
		fileURL  string
		expected models.MediaType
	}{
		{name: "jpeg", fileURL: "https://img.example/a.jpg", expected: models.MediaTypeImage},
		{name: "png", fileURL: "https://img.example/a.png", expected: models.MediaTypeImage},
		{name: "mp4", fileURL: "https://img.example/a.mp4", expected: models.MediaTypeVideo},
		{name: "uppercase mp4", fileURL: "https://img.example/A.MP4", expected: models.MediaTypeVideo},
		{name: "gif", fileURL: "https://img.example/a.gif", expected: models.MediaTypeGIF},
		{name: "empty url", fileURL: "", expected: models.MediaTypeImage},
		{name: "no extension", fileURL: "https://img.example/file", expected: models.MediaTypeImage},
		{name: "unknown extension", fileURL: "https://img.example/a.webm", expected: models.MediaTypeImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, models.MediaTypeFor(tt.fileURL))
		})
	}
}

func TestPost_DisplayURL(t *testing.T) {
	t.Run("image prefers sample", func(t *testing.T) {
		post := models.Post{
			FileURL:   "https://img.example/full.jpg",
			SampleURL: "https://img.example/sample.jpg",
		}
		assert.Equal(t, "https://img.example/sample.jpg", post.DisplayURL())
	})

	t.Run("image without sample uses file", func(t *testing.T) {
		post := models.Post{FileURL: "https://img.example/full.jpg"}
		assert.Equal(t, "https://img.example/full.jpg", post.DisplayURL())
	})

	t.Run("video ignores sample", func(t *testing.T) {
		// Samples of videos are stills, so the file URL must win
		post := models.Post{
			FileURL:   "https://img.example/clip.mp4",
			SampleURL: "https://img.example/sample.jpg",
		}
		assert.Equal(t, "https://img.example/clip.mp4", post.DisplayURL())
	})

	t.Run("gif ignores sample", func(t *testing.T) {
		post := models.Post{
			FileURL:   "https://img.example/anim.gif",
			SampleURL: "https://img.example/sample.jpg",
		}
		assert.Equal(t, "https://img.example/anim.gif", post.DisplayURL())
	})
}

func TestPost_ThumbnailURL(t *testing.T) {
	t.Run("prefers preview", func(t *testing.T) {
		post := models.Post{
			FileURL:    "https://img.example/full.jpg",
			PreviewURL: "https://img.example/thumb.jpg",
		}
		assert.Equal(t, "https://img.example/thumb.jpg", post.ThumbnailURL())
	})

	t.Run("falls back to file", func(t *testing.T) {
		post := models.Post{FileURL: "https://img.example/full.jpg"}
		assert.Equal(t, "https://img.example/full.jpg", post.ThumbnailURL())
	})
}
