// Package models provides data structures and operations for the boorubot
// backend. This file contains the per-user search session: an ephemeral,
// in-memory record of an active paginated result set.
package models

import "github.com/dvornik/boorubot/internal/constants"

// SearchSession holds the active result set and pagination position for one
// user. Sessions live only in process memory and are replaced wholesale by
// each new search.
type SearchSession struct {
	// Query is the fully composed tag string the search ran with.
	Query string `json:"query"`

	// Results is the full result set, fixed once populated.
	Results []Post `json:"results"`

	// CurrentPage is the zero-based page index.
	CurrentPage int `json:"current_page"`

	// PostsPerPage is the page size; fixed at session creation.
	PostsPerPage int `json:"posts_per_page"`

	// TotalPages is ceil(len(Results)/PostsPerPage), at least 1.
	TotalPages int `json:"total_pages"`
}

// NewSearchSession creates a session positioned at the first page.
// TotalPages is at least 1 even for an empty result set.
func NewSearchSession(query string, results []Post) *SearchSession {
	perPage := constants.PostsPerPage
	totalPages := (len(results) + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	return &SearchSession{
		Query:        query,
		Results:      results,
		CurrentPage:  0,
		PostsPerPage: perPage,
		TotalPages:   totalPages,
	}
}

// InRange reports whether page is a valid zero-based page index.
func (s *SearchSession) InRange(page int) bool {
	return page >= 0 && page < s.TotalPages
}

// PageSlice returns the posts on the given page. Out-of-range pages yield
// an empty slice.
func (s *SearchSession) PageSlice(page int) []Post {
	if !s.InRange(page) {
		return []Post{}
	}
	start := page * s.PostsPerPage
	if start >= len(s.Results) {
		return []Post{}
	}
	end := start + s.PostsPerPage
	if end > len(s.Results) {
		end = len(s.Results)
	}
	return s.Results[start:end]
}

// CurrentSlice returns the posts on the current page.
func (s *SearchSession) CurrentSlice() []Post {
	return s.PageSlice(s.CurrentPage)
}

// PostAt returns the post at an absolute index over the full result set.
// The index is not page-relative.
func (s *SearchSession) PostAt(index int) (Post, bool) {
	if index < 0 || index >= len(s.Results) {
		return Post{}, false
	}
	return s.Results[index], true
}
