// Package service provides business logic implementations for the boorubot
// backend. It contains services that orchestrate operations across
// repositories and implement the core application functionality.
//
// This file implements the booru service: query composition from stored
// preferences, post and tag searching, and the per-user pagination session
// lifecycle. It is the surface the presentation layer (chat transport, CLI,
// HTTP adapter) talks to.
package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/dvornik/boorubot/internal/constants"
	"github.com/dvornik/boorubot/internal/models"
	"github.com/dvornik/boorubot/internal/repository"
	"github.com/dvornik/boorubot/internal/utils"
)

// BooruService handles searching and result-set navigation.
type BooruService struct {
	booruRepo    repository.BooruRepository
	sessionRepo  repository.SessionRepository
	settingsRepo repository.SettingsRepository
	searchLimit  int
}

// NewBooruService creates a new BooruService with the specified dependencies.
// searchLimit caps how many posts a single search fetches from upstream; it
// is clamped to the upstream's accepted range by the repository.
func NewBooruService(
	booruRepo repository.BooruRepository,
	sessionRepo repository.SessionRepository,
	settingsRepo repository.SettingsRepository,
	searchLimit int,
) *BooruService {
	if searchLimit <= 0 {
		searchLimit = constants.MaxPostLimit
	}
	return &BooruService{
		booruRepo:    booruRepo,
		sessionRepo:  sessionRepo,
		settingsRepo: settingsRepo,
		searchLimit:  searchLimit,
	}
}

// ComposeQuery merges a raw query with a user's stored preferences into the
// final tag string. Pure string composition: no I/O, no failure modes.
func (s *BooruService) ComposeQuery(baseQuery string, settings *models.UserSettings) string {
	return settings.ComposeQuery(baseQuery)
}

// SearchPosts runs a post search with an explicit tag string.
func (s *BooruService) SearchPosts(ctx context.Context, tags string, limit, page int) ([]models.Post, error) {
	return s.booruRepo.GetPosts(ctx, repository.PostSearchCriteria{
		Tags:  tags,
		Limit: limit,
		Page:  page,
	})
}

// ComposeAndSearch composes the user's preferences onto the raw query, runs
// the search and replaces the user's session with the new result set.
//
// Zero-result searches do not create a session: the previous session (if
// any) is kept and a not-found error tells the caller to surface "no
// results". Upstream outages arrive here as zero results by design.
func (s *BooruService) ComposeAndSearch(ctx context.Context, userID int64, rawQuery string) (*models.SearchSession, error) {
	settings := s.settingsRepo.Get(ctx, userID)
	query := s.ComposeQuery(rawQuery, settings)

	log.Info().
		Int64("user_id", userID).
		Str("raw_query", rawQuery).
		Str("query", query).
		Msg("Running composed search")

	posts, err := s.booruRepo.GetPosts(ctx, repository.PostSearchCriteria{
		Tags:  query,
		Limit: s.searchLimit,
	})
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return nil, utils.NewNotFoundError("posts", query)
	}

	session := models.NewSearchSession(query, posts)
	s.sessionRepo.Save(userID, session)
	return session, nil
}

// RandomSearch runs a composed search in random order.
func (s *BooruService) RandomSearch(ctx context.Context, userID int64) (*models.SearchSession, error) {
	return s.ComposeAndSearch(ctx, userID, constants.RandomSortTag)
}

// CurrentSession returns the user's active session, if any.
func (s *BooruService) CurrentSession(userID int64) (*models.SearchSession, bool) {
	return s.sessionRepo.Get(userID)
}

// GoToPage moves the session to an absolute page index. Returns false,
// without changing the session, if no session exists or the page is out of
// range. Callers are expected to clamp before calling.
func (s *BooruService) GoToPage(userID int64, page int) bool {
	return s.sessionRepo.UpdatePage(userID, page)
}

// NavigatePage moves the session by a relative offset (typically +1 or -1)
// and returns the updated session. Returns false if there is no session or
// the target page is out of range.
func (s *BooruService) NavigatePage(userID int64, direction int) (*models.SearchSession, bool) {
	session, ok := s.sessionRepo.Get(userID)
	if !ok {
		return nil, false
	}

	target := session.CurrentPage + direction
	if !s.sessionRepo.UpdatePage(userID, target) {
		return nil, false
	}
	return session, true
}

// PageSlice returns the posts on the given page of the user's session.
func (s *BooruService) PageSlice(userID int64, page int) ([]models.Post, bool) {
	session, ok := s.sessionRepo.Get(userID)
	if !ok || !session.InRange(page) {
		return nil, false
	}
	return session.PageSlice(page), true
}

// SelectResult returns the post at an absolute index over the session's
// full result set. The index is not page-relative. Returns false for
// missing sessions and out-of-bounds indexes.
func (s *BooruService) SelectResult(userID int64, index int) (*models.Post, bool) {
	session, ok := s.sessionRepo.Get(userID)
	if !ok {
		return nil, false
	}
	post, ok := session.PostAt(index)
	if !ok {
		return nil, false
	}
	return &post, true
}

// ClearSession discards the user's active session.
func (s *BooruService) ClearSession(userID int64) bool {
	return s.sessionRepo.Delete(userID)
}

// SearchTagsWithFallback looks up tags by exact name first. If that yields
// nothing and the query is at least three characters, it retries once as a
// substring pattern search. Short queries never fall back: flooding a user
// with loose matches is worse than an empty answer.
func (s *BooruService) SearchTagsWithFallback(ctx context.Context, query string, limit int) ([]models.Tag, error) {
	tags, err := s.booruRepo.GetTags(ctx, repository.TagSearchCriteria{
		Name:  query,
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		return tags, nil
	}

	if len(query) < constants.MinPatternLength {
		return tags, nil
	}

	log.Debug().Str("query", query).Msg("No exact tag match, trying pattern search")

	return s.booruRepo.GetTags(ctx, repository.TagSearchCriteria{
		Pattern: "%" + query + "%",
		Limit:   limit,
	})
}

// GetPostByID retrieves a single post by its upstream identifier.
func (s *BooruService) GetPostByID(ctx context.Context, postID int64) (*models.Post, error) {
	return s.booruRepo.GetPostByID(ctx, postID)
}

// GetComments retrieves the comments on a post.
func (s *BooruService) GetComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	return s.booruRepo.GetComments(ctx, postID)
}

// GetDeletedImages retrieves deleted posts, optionally above lastID.
func (s *BooruService) GetDeletedImages(ctx context.Context, lastID *int64) ([]models.Post, error) {
	return s.booruRepo.GetDeletedImages(ctx, lastID)
}
