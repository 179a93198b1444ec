// Package repository provides data access implementations for the boorubot
// backend.
//
// This file implements the settings repository: one row of persisted
// preferences per user, with the tag list and toggle-rule map stored as
// JSON text. Reads never fail — missing or corrupt records degrade to
// defaults with a logged warning — while writes surface persistence
// failures, since silently losing a user's preferences is worse than a
// visible error.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dvornik/boorubot/internal/database"
	"github.com/dvornik/boorubot/internal/models"
	"github.com/dvornik/boorubot/internal/utils"
)

// SettingsRepository defines methods for persisting user settings.
type SettingsRepository interface {
	// Get retrieves a user's settings. It never fails: missing or corrupt
	// records yield defaults.
	Get(ctx context.Context, userID int64) *models.UserSettings

	// Save persists a user's settings, replacing any existing record.
	Save(ctx context.Context, userID int64, settings *models.UserSettings) error

	// Delete removes a user's settings. Returns false if none existed.
	Delete(ctx context.Context, userID int64) (bool, error)

	// Exists reports whether a user has persisted settings.
	Exists(ctx context.Context, userID int64) (bool, error)
}

// SQLSettingsRepository is a database/sql implementation of
// SettingsRepository. The queries are restricted to the dialect shared by
// the mysql and sqlite3 drivers.
type SQLSettingsRepository struct {
	db *database.Pool
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(db *database.Pool) SettingsRepository {
	return &SQLSettingsRepository{
		db: db,
	}
}

// Get retrieves user settings by user ID. A missing row, a query failure or
// a corrupt record all degrade to default settings; the failure is logged
// but never propagated.
func (r *SQLSettingsRepository) Get(ctx context.Context, userID int64) *models.UserSettings {
	startTime := time.Now()

	query := `
        SELECT user_id, auto_tags, toggle_rules, created_at, updated_at
        FROM user_settings
        WHERE user_id = ?
    `

	var (
		autoTagsJSON    []byte
		toggleRulesJSON []byte
	)
	settings := models.NewUserSettings(userID)

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&settings.UserID,
		&autoTagsJSON,
		&toggleRulesJSON,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)

	utils.LogDBQuery(query, []interface{}{userID}, time.Since(startTime), err)

	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Warn().
				Err(err).
				Int64("user_id", userID).
				Msg("Failed to read user settings, using defaults")
		}
		return models.NewUserSettings(userID)
	}

	if err := json.Unmarshal(autoTagsJSON, &settings.AutoTags); err != nil {
		log.Warn().
			Err(err).
			Int64("user_id", userID).
			Msg("Corrupt auto_tags record, using default settings")
		return models.NewUserSettings(userID)
	}
	if err := json.Unmarshal(toggleRulesJSON, &settings.ToggleRules); err != nil {
		log.Warn().
			Err(err).
			Int64("user_id", userID).
			Msg("Corrupt toggle_rules record, using default settings")
		return models.NewUserSettings(userID)
	}

	// JSON null decodes to nil collections; keep them allocated
	if settings.AutoTags == nil {
		settings.AutoTags = []string{}
	}
	if settings.ToggleRules == nil {
		settings.ToggleRules = map[string]bool{}
	}

	return settings
}

// Save persists user settings, replacing any existing row. Write failures
// surface as a persistence error.
func (r *SQLSettingsRepository) Save(ctx context.Context, userID int64, settings *models.UserSettings) error {
	startTime := time.Now()

	autoTagsJSON, err := json.Marshal(settings.AutoTags)
	if err != nil {
		return utils.NewPersistenceError(err)
	}
	toggleRulesJSON, err := json.Marshal(settings.ToggleRules)
	if err != nil {
		return utils.NewPersistenceError(err)
	}

	settings.UserID = userID
	settings.UpdatedAt = time.Now()
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = settings.UpdatedAt
	}

	// REPLACE INTO is supported by both mysql and sqlite3
	query := `
        REPLACE INTO user_settings (user_id, auto_tags, toggle_rules, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)
    `

	_, err = r.db.ExecContext(
		ctx,
		query,
		userID,
		autoTagsJSON,
		toggleRulesJSON,
		settings.CreatedAt,
		settings.UpdatedAt,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{userID, string(autoTagsJSON), string(toggleRulesJSON)},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return utils.NewPersistenceError(err)
	}

	log.Info().
		Int64("user_id", userID).
		Int("auto_tags", len(settings.AutoTags)).
		Int("toggle_rules", len(settings.ToggleRules)).
		Msg("User settings saved")

	return nil
}

// Delete removes a user's settings row. Returns false without error when no
// row existed.
func (r *SQLSettingsRepository) Delete(ctx context.Context, userID int64) (bool, error) {
	startTime := time.Now()

	query := `DELETE FROM user_settings WHERE user_id = ?`

	result, err := r.db.ExecContext(ctx, query, userID)

	utils.LogDBQuery(query, []interface{}{userID}, time.Since(startTime), err)

	if err != nil {
		return false, utils.NewPersistenceError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, utils.NewPersistenceError(err)
	}

	if rowsAffected == 0 {
		return false, nil
	}

	log.Info().
		Int64("user_id", userID).
		Msg("User settings deleted")

	return true, nil
}

// Exists reports whether a settings row exists for the user.
func (r *SQLSettingsRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	startTime := time.Now()

	query := `SELECT COUNT(*) FROM user_settings WHERE user_id = ?`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)

	utils.LogDBQuery(query, []interface{}{userID}, time.Since(startTime), err)

	if err != nil {
		return false, utils.NewPersistenceError(err)
	}

	return count > 0, nil
}
