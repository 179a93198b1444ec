package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dvornik/boorubot/internal/constants"
	"github.com/dvornik/boorubot/internal/utils"
)

// SettingsHandler handles user preference routes.
type SettingsHandler struct {
	userService UserServiceInterface
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(userService UserServiceInterface) *SettingsHandler {
	return &SettingsHandler{
		userService: userService,
	}
}

// AutoTagRequest is the body for adding an auto tag.
type AutoTagRequest struct {
	Tag string `json:"tag" validate:"required"`
}

// RuleStateRequest is the body for setting a rule to an explicit state.
type RuleStateRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// GetSettings returns the user's settings.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	settings := h.userService.GetSettings(r.Context(), userID)
	utils.JSON(w, http.StatusOK, settings)
}

// ListAutoTags returns the user's auto-append tag list.
func (h *SettingsHandler) ListAutoTags(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	tags := h.userService.AutoTags(r.Context(), userID)
	utils.JSON(w, http.StatusOK, tags)
}

// AddAutoTag appends a tag to the user's auto-append list. Adding a tag
// that is already present is a conflict, not an error in the write path.
func (h *SettingsHandler) AddAutoTag(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	var req AutoTagRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	added, err := h.userService.AddAutoTag(r.Context(), userID, req.Tag)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}
	if !added {
		utils.Error(w, http.StatusConflict, constants.CodeBadRequest, "tag already present")
		return
	}

	utils.JSON(w, http.StatusCreated, h.userService.AutoTags(r.Context(), userID))
}

// RemoveAutoTag removes the auto tag at the zero-based index in the path.
func (h *SettingsHandler) RemoveAutoTag(w http.ResponseWriter, r *http.Request) {
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

	tag, removed, err := h.userService.RemoveAutoTagByIndex(r.Context(), userID, index)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}
	if !removed {
		utils.Error(w, http.StatusNotFound, constants.CodeNotFound, "no auto tag at that index")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"removed": tag})
}

// ClearAutoTags empties the user's auto-append list.
func (h *SettingsHandler) ClearAutoTags(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	cleared, err := h.userService.ClearAutoTags(r.Context(), userID)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]int{"cleared": cleared})
}

// ListRules returns the user's toggle rules with the enabled subset broken
// out for convenience.
func (h *SettingsHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"rules":   h.userService.AllRules(r.Context(), userID),
		"enabled": h.userService.EnabledRules(r.Context(), userID),
	})
}

// ToggleRule flips the named rule and returns its new state.
func (h *SettingsHandler) ToggleRule(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	name := chi.URLParam(r, "name")
	enabled, err := h.userService.ToggleRule(r.Context(), userID, name)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"rule":    name,
		"enabled": enabled,
	})
}

// SetRule sets the named rule to the state in the request body.
func (h *SettingsHandler) SetRule(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	var req RuleStateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	name := chi.URLParam(r, "name")
	if err := h.userService.SetRule(r.Context(), userID, name, *req.Enabled); err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"rule":    name,
		"enabled": *req.Enabled,
	})
}

// ClearRules removes every toggle rule.
func (h *SettingsHandler) ClearRules(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	cleared, err := h.userService.ClearRules(r.Context(), userID)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]int{"cleared": cleared})
}

// ResetSettings restores the user to default settings.
func (h *SettingsHandler) ResetSettings(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	if err := h.userService.ResetUser(r.Context(), userID); err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, h.userService.GetSettings(r.Context(), userID))
}

// GetUser reports whether the user has any persisted settings.
func (h *SettingsHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	exists, err := h.userService.UserExists(r.Context(), userID)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"exists":  exists,
	})
}

// DeleteUser removes the user's settings and any active session.
func (h *SettingsHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}

	deleted, err := h.userService.DeleteUser(r.Context(), userID)
	if err != nil {
		utils.ErrorFromAppError(w, err)
		return
	}
	if !deleted {
		utils.Error(w, http.StatusNotFound, constants.CodeNotFound, "no data for that user")
		return
	}

	utils.NoContent(w)
}
