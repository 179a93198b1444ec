// Package repository provides data access implementations for the boorubot
// backend: the upstream image-board API, the settings store and the
// in-memory session store.
//
// This file implements the booru repository. The upstream API is stateless
// but schema-flexible: the same endpoint may answer with a bare list, a
// keyed object, a pluralized key or a single unwrapped record depending on
// the deployment. Every response is normalized into plain model slices
// before any business logic sees it, and post searches degrade to empty
// results on request failure so upstream outages read as "no matches"
// rather than hard errors.
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dvornik/boorubot/internal/config"
	"github.com/dvornik/boorubot/internal/constants"
	"github.com/dvornik/boorubot/internal/models"
	"github.com/dvornik/boorubot/internal/utils"
)

// PostSearchCriteria describes a post search request.
type PostSearchCriteria struct {
	// Tags is the space-separated tag query. Empty matches everything.
	Tags string

	// Limit caps results per request; clamped to [1,100].
	Limit int

	// Page is the zero-based upstream result page.
	Page int

	// PostID restricts the search to a single post.
	PostID *int64

	// ChangeID filters posts by change ID.
	ChangeID *int64
}

// TagSearchCriteria describes a tag search request.
type TagSearchCriteria struct {
	// Limit caps results per request.
	Limit int

	// AfterID pages tag listings by ID.
	AfterID *int64

	// Name matches a tag by exact name.
	Name string

	// Names matches multiple tags by name.
	Names string

	// Pattern is a wildcard pattern, e.g. "%school%".
	Pattern string

	// Order is the sort direction, ASC or DESC.
	Order string

	// OrderBy is the sort field: date, count or name.
	OrderBy string
}

// BooruRepository defines methods for interacting with the image-board API.
type BooruRepository interface {
	GetPosts(ctx context.Context, criteria PostSearchCriteria) ([]models.Post, error)
	GetPostByID(ctx context.Context, postID int64) (*models.Post, error)
	GetTags(ctx context.Context, criteria TagSearchCriteria) ([]models.Tag, error)
	GetComments(ctx context.Context, postID int64) ([]models.Comment, error)
	GetDeletedImages(ctx context.Context, lastID *int64) ([]models.Post, error)
}

// HTTPBooruRepository is an HTTP implementation of BooruRepository.
type HTTPBooruRepository struct {
	baseURL string
	apiKey  string
	userID  string
	client  *http.Client
}

// NewBooruRepository creates a BooruRepository for the configured upstream.
func NewBooruRepository(cfg *config.BooruSettings) BooruRepository {
	return &HTTPBooruRepository{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		userID:  cfg.UserID,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// params is an ordered parameter list. Order is preserved for log
// readability; encoding percent-escapes values with the space-as-plus
// convention.
type params struct {
	pairs [][2]string
}

func (p *params) set(key, value string) {
	p.pairs = append(p.pairs, [2]string{key, value})
}

func (p *params) setInt(key string, value int64) {
	p.set(key, strconv.FormatInt(value, 10))
}

// encode renders the parameters as a query string. Keys and values are
// percent-encoded with spaces becoming "+".
func (p *params) encode() string {
	var b strings.Builder
	for i, pair := range p.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(pair[0]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(pair[1]))
	}
	return b.String()
}

// doRequest issues one GET against the index endpoint and classifies
// failures: transport errors (including timeouts) become connection
// failures, non-2xx statuses become upstream errors, anything else is
// unexpected. The response body is returned raw for normalization.
func (r *HTTPBooruRepository) doRequest(ctx context.Context, p *params) ([]byte, error) {
	// Auth parameters travel as a pair or not at all
	if r.apiKey != "" && r.userID != "" {
		p.set(constants.ParamAPIKey, r.apiKey)
		p.set(constants.ParamUserID, r.userID)
	}

	requestURL := r.baseURL + constants.IndexEndpoint + "?" + p.encode()
	requestID := uuid.New().String()
	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, utils.NewUnexpectedError(fmt.Errorf("failed to build request: %w", err))
	}

	resp, err := r.client.Do(req)
	if err != nil {
		utils.LogUpstreamRequest(requestID, requestURL, 0, time.Since(startTime), err)
		return nil, utils.NewConnectionError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	utils.LogUpstreamRequest(requestID, requestURL, resp.StatusCode, time.Since(startTime), err)
	if err != nil {
		return nil, utils.NewUnexpectedError(fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := strings.TrimSpace(string(body))
		if len(message) > 200 {
			message = message[:200]
		}
		return nil, utils.NewUpstreamError(resp.StatusCode, message)
	}

	return body, nil
}

// decodeKeyedList normalizes an upstream response body into a list of raw
// records for the given resource key. It accepts, in order of preference:
// an empty or null body (zero results), a bare top-level list, an object
// keyed by the singular resource name, the pluralized alternate key, and a
// single unwrapped record under either key. Any other shape normalizes to
// zero results with a logged warning; shape anomalies are never errors.
func decodeKeyedList(body []byte, singular, plural string) []json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []json.RawMessage{}
	}

	// Bare list response
	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			log.Warn().Err(err).Str("key", singular).Msg("Malformed list response from upstream")
			return []json.RawMessage{}
		}
		return items
	}

	if trimmed[0] != '{' {
		log.Warn().Str("key", singular).Msg("Unexpected response shape from upstream")
		return []json.RawMessage{}
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		log.Warn().Err(err).Str("key", singular).Msg("Malformed object response from upstream")
		return []json.RawMessage{}
	}

	raw, ok := envelope[singular]
	if !ok {
		// Some deployments pluralize the resource key
		raw, ok = envelope[plural]
	}
	if !ok {
		return []json.RawMessage{}
	}

	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return []json.RawMessage{}
	case raw[0] == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			log.Warn().Err(err).Str("key", singular).Msg("Malformed resource list from upstream")
			return []json.RawMessage{}
		}
		return items
	case raw[0] == '{':
		// Single unwrapped record
		return []json.RawMessage{raw}
	default:
		log.Warn().Str("key", singular).Msg("Unexpected resource value shape from upstream")
		return []json.RawMessage{}
	}
}

// decodePosts unmarshals raw records into posts, skipping records that
// cannot be decoded.
func decodePosts(items []json.RawMessage) []models.Post {
	posts := make([]models.Post, 0, len(items))
	for _, item := range items {
		var post models.Post
		if err := json.Unmarshal(item, &post); err != nil {
			log.Warn().Err(err).Msg("Skipping undecodable post record")
			continue
		}
		posts = append(posts, post)
	}
	return posts
}

// clampPostLimit applies the upstream's accepted limit range.
func clampPostLimit(limit int) int {
	if limit <= 0 {
		return constants.DefaultPostLimit
	}
	if limit < constants.MinPostLimit {
		return constants.MinPostLimit
	}
	if limit > constants.MaxPostLimit {
		return constants.MaxPostLimit
	}
	return limit
}

// GetPosts retrieves posts matching the criteria.
//
// The primary DAPI request format is tried first. If it fails at the
// transport or HTTP level, one retry is made against the alternate
// page=post/s=list format some booru implementations expose. If both
// attempts fail the search degrades to an empty result set; the caller
// cannot distinguish an outage from zero matches, by contract.
func (r *HTTPBooruRepository) GetPosts(ctx context.Context, criteria PostSearchCriteria) ([]models.Post, error) {
	limit := clampPostLimit(criteria.Limit)

	primary := &params{}
	primary.set(constants.ParamPage, constants.PageDAPI)
	primary.set(constants.ParamResource, constants.ResourcePost)
	primary.set(constants.ParamQueryType, constants.QueryIndex)
	primary.setInt(constants.ParamLimit, int64(limit))
	primary.setInt(constants.ParamPID, int64(criteria.Page))
	primary.set(constants.ParamJSON, constants.JSONEnabled)
	if criteria.Tags != "" {
		primary.set(constants.ParamTags, criteria.Tags)
	}
	if criteria.ChangeID != nil {
		primary.setInt(constants.ParamChangeID, *criteria.ChangeID)
	}
	if criteria.PostID != nil {
		primary.setInt(constants.ParamID, *criteria.PostID)
	}

	body, err := r.doRequest(ctx, primary)
	if err == nil {
		return decodePosts(decodeKeyedList(body, constants.KeyPost, constants.KeyPosts)), nil
	}

	log.Warn().
		Err(err).
		Str("tags", criteria.Tags).
		Msg("Primary post search format failed, trying fallback format")

	fallback := &params{}
	fallback.set(constants.ParamPage, constants.FallbackPage)
	fallback.set(constants.ParamResource, constants.FallbackResource)
	fallback.setInt(constants.ParamLimit, int64(limit))
	fallback.setInt(constants.ParamPID, int64(criteria.Page))
	fallback.set(constants.ParamJSON, constants.JSONEnabled)
	if criteria.Tags != "" {
		fallback.set(constants.ParamTags, criteria.Tags)
	}
	if criteria.PostID != nil {
		fallback.setInt(constants.ParamID, *criteria.PostID)
	}

	body, fallbackErr := r.doRequest(ctx, fallback)
	if fallbackErr != nil {
		log.Error().
			Err(fallbackErr).
			Str("tags", criteria.Tags).
			Msg("Fallback post search format also failed, returning no results")
		return []models.Post{}, nil
	}

	log.Info().Str("tags", criteria.Tags).Msg("Fallback post search format succeeded")
	return decodePosts(decodeKeyedList(body, constants.KeyPost, constants.KeyPosts)), nil
}

// GetPostByID retrieves a single post as a limit-1 search.
func (r *HTTPBooruRepository) GetPostByID(ctx context.Context, postID int64) (*models.Post, error) {
	posts, err := r.GetPosts(ctx, PostSearchCriteria{
		Limit:  1,
		PostID: &postID,
	})
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, utils.NewNotFoundError("Post", postID)
	}
	return &posts[0], nil
}

// GetTags retrieves tags matching the criteria. There is no fallback
// request format for tags; outright request failures degrade to an empty
// tag list.
func (r *HTTPBooruRepository) GetTags(ctx context.Context, criteria TagSearchCriteria) ([]models.Tag, error) {
	limit := criteria.Limit
	if limit <= 0 {
		limit = constants.DefaultTagLimit
	}
	order := criteria.Order
	if order == "" {
		order = constants.DefaultTagOrder
	}
	orderBy := criteria.OrderBy
	if orderBy == "" {
		orderBy = constants.DefaultTagOrderBy
	}

	p := &params{}
	p.set(constants.ParamPage, constants.PageDAPI)
	p.set(constants.ParamResource, constants.ResourceTag)
	p.set(constants.ParamQueryType, constants.QueryIndex)
	p.setInt(constants.ParamLimit, int64(limit))
	p.set(constants.ParamOrder, order)
	p.set(constants.ParamOrderBy, orderBy)
	p.set(constants.ParamJSON, constants.JSONEnabled)
	if criteria.AfterID != nil {
		p.setInt(constants.ParamAfterID, *criteria.AfterID)
	}
	if criteria.Name != "" {
		p.set(constants.ParamName, criteria.Name)
	}
	if criteria.Names != "" {
		p.set(constants.ParamNames, criteria.Names)
	}
	if criteria.Pattern != "" {
		p.set(constants.ParamTags, criteria.Pattern)
	}

	body, err := r.doRequest(ctx, p)
	if err != nil {
		log.Warn().Err(err).Str("name", criteria.Name).Str("pattern", criteria.Pattern).
			Msg("Tag search failed, returning no results")
		return []models.Tag{}, nil
	}

	items := decodeKeyedList(body, constants.KeyTag, constants.KeyTags)
	tags := make([]models.Tag, 0, len(items))
	for _, item := range items {
		var tag models.Tag
		if err := json.Unmarshal(item, &tag); err != nil {
			log.Warn().Err(err).Msg("Skipping undecodable tag record")
			continue
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// GetComments retrieves comments for a post. Unlike searches, comment
// retrieval surfaces request failures to the caller.
func (r *HTTPBooruRepository) GetComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	p := &params{}
	p.set(constants.ParamPage, constants.PageDAPI)
	p.set(constants.ParamResource, constants.ResourceComment)
	p.set(constants.ParamQueryType, constants.QueryIndex)
	p.setInt(constants.ParamPostID, postID)
	p.set(constants.ParamJSON, constants.JSONEnabled)

	body, err := r.doRequest(ctx, p)
	if err != nil {
		return nil, err
	}

	items := decodeKeyedList(body, constants.KeyComment, constants.KeyComments)
	comments := make([]models.Comment, 0, len(items))
	for _, item := range items {
		var comment models.Comment
		if err := json.Unmarshal(item, &comment); err != nil {
			log.Warn().Err(err).Msg("Skipping undecodable comment record")
			continue
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

// GetDeletedImages retrieves deleted posts, optionally above lastID. Like
// comments, failures surface to the caller.
func (r *HTTPBooruRepository) GetDeletedImages(ctx context.Context, lastID *int64) ([]models.Post, error) {
	p := &params{}
	p.set(constants.ParamPage, constants.PageDAPI)
	p.set(constants.ParamResource, constants.ResourcePost)
	p.set(constants.ParamQueryType, constants.QueryIndex)
	p.set(constants.ParamDeleted, constants.DeletedShow)
	p.set(constants.ParamJSON, constants.JSONEnabled)
	if lastID != nil {
		p.setInt(constants.ParamLastID, *lastID)
	}

	body, err := r.doRequest(ctx, p)
	if err != nil {
		return nil, err
	}

	return decodePosts(decodeKeyedList(body, constants.KeyPost, constants.KeyPosts)), nil
}
