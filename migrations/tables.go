package migrations

import (
	"context"
	"database/sql"
)

// allMigrations returns every migration in execution order.
func allMigrations() []Migration {
	return []Migration{
		createUserSettingsTable(),
	}
}

// createUserSettingsTable creates the user_settings table. One row per user,
// preferences stored as JSON text so the schema survives preference shape
// changes without migrations.
func createUserSettingsTable() Migration {
	return Migration{
		Name:        "create_user_settings_table",
		Description: "Creates the user_settings table",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS user_settings (
					user_id BIGINT PRIMARY KEY,
					auto_tags TEXT NOT NULL,
					toggle_rules TEXT NOT NULL,
					created_at TIMESTAMP NOT NULL,
					updated_at TIMESTAMP NOT NULL
				)
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}
