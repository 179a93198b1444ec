// Package models provides data structures and operations for the boorubot
// backend. This file contains the Post record returned by the image-board
// API and its derived presentation attributes.
package models

import "strings"

// MediaType classifies a post's media by file extension.
type MediaType string

// Media types derived from the file URL extension.
const (
	MediaTypeImage MediaType = "image"
	MediaTypeGIF   MediaType = "gif"
	MediaTypeVideo MediaType = "video"
)

// Post represents a single post from the image-board API.
//
// No upstream field is guaranteed to be present, and numeric fields may
// arrive as strings depending on the deployment, so every field decodes
// tolerantly and zero values stand in for absent data.
type Post struct {
	// ID is the upstream post identifier.
	ID FlexInt64 `json:"id"`

	// FileURL points at the full-size media file.
	FileURL string `json:"file_url"`

	// PreviewURL points at the thumbnail, when the deployment provides one.
	PreviewURL string `json:"preview_url"`

	// SampleURL points at a downscaled sample, when available.
	SampleURL string `json:"sample_url"`

	// Width and Height are the full-size media dimensions in pixels.
	Width  FlexInt64 `json:"width"`
	Height FlexInt64 `json:"height"`

	// Score is the community vote total.
	Score FlexInt64 `json:"score"`

	// Rating is the content rating string (e.g. "safe").
	Rating FlexString `json:"rating"`

	// Tags is the space-separated tag list attached to the post.
	Tags FlexString `json:"tags"`

	// CreatedAt is the upstream creation timestamp in whatever format the
	// deployment emits; it is passed through verbatim.
	CreatedAt FlexString `json:"created_at"`

	// Source is the original source URL, when recorded.
	Source FlexString `json:"source"`
}

// MediaTypeFor classifies a file URL by extension: .mp4 is video, .gif is a
// gif, anything else (including an empty URL) is an image.
func MediaTypeFor(fileURL string) MediaType {
	if fileURL == "" {
		return MediaTypeImage
	}

	lowered := strings.ToLower(fileURL)
	idx := strings.LastIndex(lowered, ".")
	if idx < 0 {
		return MediaTypeImage
	}

	switch lowered[idx+1:] {
	case "mp4":
		return MediaTypeVideo
	case "gif":
		return MediaTypeGIF
	default:
		return MediaTypeImage
	}
}

// MediaType returns the media classification of the post's file URL.
func (p *Post) MediaType() MediaType {
	return MediaTypeFor(p.FileURL)
}

// DisplayURL returns the best URL for displaying the full media. Videos and
// gifs must use the file URL since samples are stills; images prefer the
// downscaled sample when one exists.
func (p *Post) DisplayURL() string {
	if mt := p.MediaType(); mt == MediaTypeVideo || mt == MediaTypeGIF {
		return p.FileURL
	}
	if p.SampleURL != "" {
		return p.SampleURL
	}
	return p.FileURL
}

// ThumbnailURL returns the preview URL, falling back to the file URL when
// the deployment does not generate thumbnails.
func (p *Post) ThumbnailURL() string {
	if p.PreviewURL != "" {
		return p.PreviewURL
	}
	return p.FileURL
}

// TagList splits the space-separated tag string into individual tags.
func (p *Post) TagList() []string {
	return strings.Fields(p.Tags.String())
}
