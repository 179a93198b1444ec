// Package handlers provides HTTP request handlers for the boorubot API.
package handlers

import (
	"context"

	"github.com/dvornik/boorubot/internal/models"
)

// SearchServiceInterface defines methods required from the booru service.
// The handlers depend on this interface rather than the concrete service so
// they can be tested against fakes.
type SearchServiceInterface interface {
	// ComposeAndSearch composes the user's stored preferences onto the raw
	// query, runs the search and replaces the user's session.
	ComposeAndSearch(ctx context.Context, userID int64, rawQuery string) (*models.SearchSession, error)

	// RandomSearch runs a composed search in random order.
	RandomSearch(ctx context.Context, userID int64) (*models.SearchSession, error)

	// CurrentSession returns the user's active session, if any.
	CurrentSession(userID int64) (*models.SearchSession, bool)

	// GoToPage moves the session to an absolute page index.
	GoToPage(userID int64, page int) bool

	// NavigatePage moves the session by a relative offset.
	NavigatePage(userID int64, direction int) (*models.SearchSession, bool)

	// PageSlice returns the posts on the given page of the user's session.
	PageSlice(userID int64, page int) ([]models.Post, bool)

	// SelectResult returns the post at an absolute index in the session.
	SelectResult(userID int64, index int) (*models.Post, bool)

	// ClearSession discards the user's active session.
	ClearSession(userID int64) bool

	// SearchTagsWithFallback looks up tags by exact name with a wildcard
	// retry for longer queries.
	SearchTagsWithFallback(ctx context.Context, query string, limit int) ([]models.Tag, error)

	// GetPostByID retrieves a single post.
	GetPostByID(ctx context.Context, postID int64) (*models.Post, error)

	// GetComments retrieves the comments on a post.
	GetComments(ctx context.Context, postID int64) ([]models.Comment, error)

	// GetDeletedImages retrieves deleted posts, optionally above lastID.
	GetDeletedImages(ctx context.Context, lastID *int64) ([]models.Post, error)
}

// UserServiceInterface defines methods required from the user service.
type UserServiceInterface interface {
	// GetSettings returns the user's current settings, defaults included.
	GetSettings(ctx context.Context, userID int64) *models.UserSettings

	// AddAutoTag appends a tag to the auto-append list.
	AddAutoTag(ctx context.Context, userID int64, tag string) (bool, error)

	// RemoveAutoTag removes a tag from the auto-append list by value.
	RemoveAutoTag(ctx context.Context, userID int64, tag string) (bool, error)

	// RemoveAutoTagByIndex removes the tag at a zero-based position.
	RemoveAutoTagByIndex(ctx context.Context, userID int64, index int) (string, bool, error)

	// ClearAutoTags empties the auto-append list.
	ClearAutoTags(ctx context.Context, userID int64) (int, error)

	// AutoTags returns the auto-append list in stored order.
	AutoTags(ctx context.Context, userID int64) []string

	// ToggleRule flips a named rule and returns its new state.
	ToggleRule(ctx context.Context, userID int64, name string) (bool, error)

	// SetRule sets a named rule to an explicit state.
	SetRule(ctx context.Context, userID int64, name string, enabled bool) error

	// EnabledRules returns the names of enabled rules, sorted.
	EnabledRules(ctx context.Context, userID int64) []string

	// AllRules returns the full rule map.
	AllRules(ctx context.Context, userID int64) map[string]bool

	// ClearRules removes every toggle rule.
	ClearRules(ctx context.Context, userID int64) (int, error)

	// ResetUser restores a user to default settings.
	ResetUser(ctx context.Context, userID int64) error

	// DeleteUser removes a user's settings and session.
	DeleteUser(ctx context.Context, userID int64) (bool, error)

	// UserExists reports whether a user has persisted settings.
	UserExists(ctx context.Context, userID int64) (bool, error)
}
