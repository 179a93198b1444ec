// Package constants provides shared constant values used throughout the application.
//
// The database_const.go file defines table names, column names and supported
// driver identifiers for the settings store.
package constants

// Supported database drivers. Both use `?` placeholders, which keeps the
// repository queries driver-agnostic.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// Table names.
const (
	// TableUserSettings stores one row of preferences per user.
	TableUserSettings = "user_settings"

	// TableSchemaMigrations tracks executed migrations.
	TableSchemaMigrations = "schema_migrations"
)

// Column names of the user_settings table.
const (
	ColumnUserID      = "user_id"
	ColumnAutoTags    = "auto_tags"
	ColumnToggleRules = "toggle_rules"
	ColumnCreatedAt   = "created_at"
	ColumnUpdatedAt   = "updated_at"
)
