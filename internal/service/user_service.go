// Package service provides business logic implementations for the boorubot
// backend.
//
// This file implements the user service: reading and mutating a user's
// persisted preferences (auto-append tags and toggle rules). Every mutation
// is read-modify-write against the settings repository so the stored row is
// always the single source of truth.
package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dvornik/boorubot/internal/models"
	"github.com/dvornik/boorubot/internal/repository"
	"github.com/dvornik/boorubot/internal/utils"
)

// UserService handles user preference management.
type UserService struct {
	settingsRepo repository.SettingsRepository
	sessionRepo  repository.SessionRepository
}

// NewUserService creates a new UserService with the specified repositories.
func NewUserService(settingsRepo repository.SettingsRepository, sessionRepo repository.SessionRepository) *UserService {
	return &UserService{
		settingsRepo: settingsRepo,
		sessionRepo:  sessionRepo,
	}
}

// GetSettings returns the user's current settings. Never fails; users
// without a stored record get defaults.
func (s *UserService) GetSettings(ctx context.Context, userID int64) *models.UserSettings {
	return s.settingsRepo.Get(ctx, userID)
}

// AddAutoTag appends a tag to the user's auto-append list. Returns false
// without writing when the tag is empty or already present.
func (s *UserService) AddAutoTag(ctx context.Context, userID int64, tag string) (bool, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false, utils.NewValidationError("tag", "tag must not be empty")
	}

	settings := s.settingsRepo.Get(ctx, userID)
	if !settings.AddAutoTag(tag) {
		return false, nil
	}

	if err := s.settingsRepo.Save(ctx, userID, settings); err != nil {
		return false, err
	}

	log.Info().
		Int64("user_id", userID).
		Str("tag", tag).
		Msg("Auto tag added")

	return true, nil
}

// RemoveAutoTag removes a tag from the user's auto-append list by value.
// Returns false without writing when the tag was not present.
func (s *UserService) RemoveAutoTag(ctx context.Context, userID int64, tag string) (bool, error) {
	settings := s.settingsRepo.Get(ctx, userID)
	if !settings.RemoveAutoTag(tag) {
		return false, nil
	}

	if err := s.settingsRepo.Save(ctx, userID, settings); err != nil {
		return false, err
	}

	log.Info().
		Int64("user_id", userID).
		Str("tag", tag).
		Msg("Auto tag removed")

	return true, nil
}

// RemoveAutoTagByIndex removes the auto tag at a zero-based position in the
// stored list and returns the removed tag. Returns false for out-of-range
// indexes.
func (s *UserService) RemoveAutoTagByIndex(ctx context.Context, userID int64, index int) (string, bool, error) {
	settings := s.settingsRepo.Get(ctx, userID)

	tag, ok := settings.RemoveAutoTagAt(index)
	if !ok {
		return "", false, nil
	}

	if err := s.settingsRepo.Save(ctx, userID, settings); err != nil {
		return "", false, err
	}

	log.Info().
		Int64("user_id", userID).
		Str("tag", tag).
		Int("index", index).
		Msg("Auto tag removed by index")

	return tag, true, nil
}

// ClearAutoTags empties the user's auto-append list and returns how many
// tags were removed.
func (s *UserService) ClearAutoTags(ctx context.Context, userID int64) (int, error) {
	settings := s.settingsRepo.Get(ctx, userID)

	count := len(settings.AutoTags)
	if count == 0 {
		return 0, nil
	}
	settings.AutoTags = []string{}

	if err := s.settingsRepo.Save(ctx, userID, settings); err != nil {
		return 0, err
	}

	log.Info().
		Int64("user_id", userID).
		Int("cleared", count).
		Msg("Auto tags cleared")

	return count, nil
}

// AutoTags returns the user's auto-append list in stored order.
func (s *UserService) AutoTags(ctx context.Context, userID int64) []string {
	return s.settingsRepo.Get(ctx, userID).AutoTags
}

// ToggleRule flips a named rule on or off and returns its new state.
func (s *UserService) ToggleRule(ctx context.Context, userID int64, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, utils.NewValidationError("name", "rule name must not be empty")
	}

	settings := s.settingsRepo.Get(ctx, userID)
	enabled := settings.Toggle(name)

	if err := s.settingsRepo.Save(ctx, userID, settings); err != nil {
		return false, err
	}

	log.Info().
		Int64("user_id", userID).
		Str("rule", name).
		Bool("enabled", enabled).
		Msg("Toggle rule flipped")

	return enabled, nil
}

// SetRule sets a named rule to an explicit state.
func (s *UserService) SetRule(ctx context.Context, userID int64, name string, enabled bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return utils.NewValidationError("name", "rule name must not be empty")
	}

	settings := s.settingsRepo.Get(ctx, userID)
	settings.SetRule(name, enabled)

	if err := s.settingsRepo.Save(ctx, userID, settings); err != nil {
		return err
	}

	log.Info().
		Int64("user_id", userID).
		Str("rule", name).
		Bool("enabled", enabled).
		Msg("Toggle rule set")

	return nil
}

// EnabledRules returns the names of the user's enabled rules, sorted.
func (s *UserService) EnabledRules(ctx context.Context, userID int64) []string {
	return s.settingsRepo.Get(ctx, userID).EnabledRules()
}

// AllRules returns the user's full rule map, enabled and disabled alike.
func (s *UserService) AllRules(ctx context.Context, userID int64) map[string]bool {
	return s.settingsRepo.Get(ctx, userID).ToggleRules
}

// ClearRules removes every toggle rule and returns how many were removed.
func (s *UserService) ClearRules(ctx context.Context, userID int64) (int, error) {
	settings := s.settingsRepo.Get(ctx, userID)

	count := len(settings.ToggleRules)
	if count == 0 {
		return 0, nil
	}
	settings.ToggleRules = map[string]bool{}

	if err := s.settingsRepo.Save(ctx, userID, settings); err != nil {
		return 0, err
	}

	log.Info().
		Int64("user_id", userID).
		Int("cleared", count).
		Msg("Toggle rules cleared")

	return count, nil
}

// ResetUser restores a user to default settings, keeping the settings row
// but emptying both preference collections.
func (s *UserService) ResetUser(ctx context.Context, userID int64) error {
	settings := s.settingsRepo.Get(ctx, userID)
	fresh := models.NewUserSettings(userID)
	fresh.CreatedAt = settings.CreatedAt

	if err := s.settingsRepo.Save(ctx, userID, fresh); err != nil {
		return err
	}

	log.Info().
		Int64("user_id", userID).
		Msg("User settings reset to defaults")

	return nil
}

// DeleteUser removes a user's settings row and any active search session.
// Returns false when neither existed.
func (s *UserService) DeleteUser(ctx context.Context, userID int64) (bool, error) {
	deleted, err := s.settingsRepo.Delete(ctx, userID)
	if err != nil {
		return false, err
	}

	hadSession := s.sessionRepo.Delete(userID)

	if deleted || hadSession {
		log.Info().
			Int64("user_id", userID).
			Bool("had_settings", deleted).
			Bool("had_session", hadSession).
			Msg("User data deleted")
	}

	return deleted || hadSession, nil
}

// UserExists reports whether a user has persisted settings.
func (s *UserService) UserExists(ctx context.Context, userID int64) (bool, error) {
	return s.settingsRepo.Exists(ctx, userID)
}
