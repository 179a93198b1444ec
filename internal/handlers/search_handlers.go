package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dvornik/boorubot/internal/constants"
	"github.com/dvornik/boorubot/internal/models"
	"github.com/dvornik/boorubot/internal/utils"
)

// SearchHandler handles search and result-navigation routes.
type SearchHandler struct {
	searchService SearchServiceInterface
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService SearchServiceInterface) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// SearchRequest is the body of a search request.
type SearchRequest struct {
	Query string `json:"query"`
}

// NavigateRequest is the body of a relative page-navigation request.
type NavigateRequest struct {
	Direction string `json:"direction" validate:"required,oneof=next prev"`
}

// sessionPage is the standard shape for a page of search results.
type sessionPage struct {
	Query string        `json:"query"`
	Posts []postView    `json:"posts"`
	Meta  sessionCursor `json:"cursor"`
}

type sessionCursor struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	TotalPosts int `json:"total_posts"`
}

// postView augments a post with the derived media fields the caller would
// otherwise have to recompute.
type postView struct {
	models.Post
	MediaType    string `json:"media_type"`
	DisplayURL   string `json:"display_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

func toPostViews(posts []models.Post) []postView {
	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		views = append(views, postView{
			Post:         p,
			MediaType:    string(p.MediaType()),
			DisplayURL:   p.DisplayURL(),
			ThumbnailURL: p.ThumbnailURL(),
		})
	}
	return views
}

func sessionPageResponse(session *models.SearchSession, page int) sessionPage {
	return sessionPage{
		Query: session.Query,
		Posts: toPostViews(session.PageSlice(page)),
		Meta: sessionCursor{
			Page:       page,
			TotalPages: session.TotalPages,
			TotalPosts: len(session.Results),
		},
	}
}

// userIDParam extracts and parses the userID route parameter.
func userIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, utils.NewValidationError("userID", "must be a positive integer")
	}
	return userID, nil
}

// Search runs a composed search for the user and returns the first page of
// the new session.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	var req SearchRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	session, err := h.searchService.ComposeAndSearch(r.Context(), userID, req.Query)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, sessionPageResponse(session, session.CurrentPage))
}

// RandomSearch runs a composed search in random order.
func (h *SearchHandler) RandomSearch(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	session, err := h.searchService.RandomSearch(r.Context(), userID)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, sessionPageResponse(session, session.CurrentPage))
}

// GetResults returns a page of the user's active session. Without a page
// query parameter it returns the session's current page; with one it first
// moves the session there.
func (h *SearchHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	session, ok := h.searchService.CurrentSession(userID)
	if !ok {
		utils.Error(w, http.StatusNotFound, constants.CodeNotFound, "no active search session")
		return
	}

	page := session.CurrentPage
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.ErrorFromAppError(w, utils.NewValidationError("page", "must be an integer"))
			return
		}
		if !h.searchService.GoToPage(userID, parsed) {
			utils.Error(w, http.StatusBadRequest, constants.CodeBadRequest, "page out of range")
			return
		}
		page = parsed
	}

	utils.JSON(w, http.StatusOK, sessionPageResponse(session, page))
}

// Navigate moves the session one page forward or back.
func (h *SearchHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	var req NavigateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	direction := 1
	if req.Direction == "prev" {
		direction = -1
	}

	session, ok := h.searchService.NavigatePage(userID, direction)
	if !ok {
		utils.Error(w, http.StatusBadRequest, constants.CodeBadRequest, "no session or page out of range")
		return
	}

	utils.JSON(w, http.StatusOK, sessionPageResponse(session, session.CurrentPage))
}

// SelectResult returns the post at an absolute index in the session.
func (h *SearchHandler) SelectResult(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		utils.ErrorFromAppError(w, utils.NewValidationError("index", "must be a non-negative integer"))
		return
	}

	post, ok := h.searchService.SelectResult(userID, index)
	if !ok {
		utils.Error(w, http.StatusNotFound, constants.CodeNotFound, "no result at that index")
		return
	}

	views := toPostViews([]models.Post{*post})
	utils.JSON(w, http.StatusOK, views[0])
}

// ClearResults discards the user's active session.
func (h *SearchHandler) ClearResults(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	h.searchService.ClearSession(userID)
	utils.NoContent(w)
}

// SearchTags looks up tags by name with a wildcard fallback.
func (h *SearchHandler) SearchTags(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		utils.ErrorFromAppError(w, utils.NewValidationError("query", "must not be empty"))
		return
	}

	limit := constants.DefaultTagLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.ErrorFromAppError(w, utils.NewValidationError("limit", "must be a positive integer"))
			return
		}
		limit = parsed
	}

	tags, err := h.searchService.SearchTagsWithFallback(r.Context(), query, limit)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, tags)
}

// GetPost returns a single post by its upstream identifier.
func (h *SearchHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil || postID <= 0 {
		utils.ErrorFromAppError(w, utils.NewValidationError("postID", "must be a positive integer"))
		return
	}

	post, err := h.searchService.GetPostByID(r.Context(), postID)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	views := toPostViews([]models.Post{*post})
	utils.JSON(w, http.StatusOK, views[0])
}

// GetComments returns the comments on a post.
func (h *SearchHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil || postID <= 0 {
		utils.ErrorFromAppError(w, utils.NewValidationError("postID", "must be a positive integer"))
		return
	}

	comments, err := h.searchService.GetComments(r.Context(), postID)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, comments)
}

// GetDeletedImages returns deleted posts, optionally above last_id.
func (h *SearchHandler) GetDeletedImages(w http.ResponseWriter, r *http.Request) {
	var lastID *int64
	if raw := r.URL.Query().Get("last_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			utils.ErrorFromAppError(w, utils.NewValidationError("last_id", "must be a non-negative integer"))
			return
		}
		lastID = &parsed
	}

	posts, err := h.searchService.GetDeletedImages(r.Context(), lastID)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, toPostViews(posts))
}
