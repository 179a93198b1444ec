// Package migrations provides a framework for database schema management.
//
// It implements an idempotent migration system that tracks executed
// migrations in a dedicated table and ensures all required tables exist
// before the settings store is used. The DDL is restricted to the dialect
// shared by the supported drivers (mysql and sqlite3).
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dvornik/boorubot/internal/constants"
	"github.com/dvornik/boorubot/internal/database"
)

// Migration represents a database migration. Each migration performs a
// specific schema change and is tracked to ensure it runs exactly once.
type Migration struct {
	// Name is a unique identifier for the migration
	Name string
	// Description is a human-readable explanation of what the migration does
	Description string
	// RunSQL is the function that executes the migration SQL within a transaction
	RunSQL func(ctx context.Context, tx *sql.Tx) error
}

// Migrator handles database migrations.
type Migrator struct {
	db *database.Pool
}

// NewMigrator creates a new migrator for the given pool.
func NewMigrator(db *database.Pool) *Migrator {
	return &Migrator{db: db}
}

// RunMigrations runs all pending database migrations. It creates the
// tracking table if needed and executes any migration not yet recorded.
// Safe to run on every startup.
func (m *Migrator) RunMigrations(ctx context.Context) error {
	if err := m.ensureMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to ensure migrations table: %w", err)
	}

	for _, migration := range allMigrations() {
		executed, err := m.hasExecuted(ctx, migration.Name)
		if err != nil {
			return fmt.Errorf("failed to check migration %s: %w", migration.Name, err)
		}
		if executed {
			continue
		}

		log.Info().
			Str("migration", migration.Name).
			Str("description", migration.Description).
			Msg("Running migration")

		err = m.db.Transaction(ctx, func(tx *sql.Tx) error {
			if err := migration.RunSQL(ctx, tx); err != nil {
				return err
			}
			_, err := tx.ExecContext(
				ctx,
				`INSERT INTO `+constants.TableSchemaMigrations+` (name, executed_at) VALUES (?, ?)`,
				migration.Name,
				time.Now(),
			)
			return err
		})
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}
	}

	log.Info().Msg("Database migrations complete")
	return nil
}

// ensureMigrationsTable creates the tracking table if it does not exist.
func (m *Migrator) ensureMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS ` + constants.TableSchemaMigrations + ` (
			name VARCHAR(255) PRIMARY KEY,
			executed_at TIMESTAMP NOT NULL
		)
	`
	_, err := m.db.ExecContext(ctx, query)
	return err
}

// hasExecuted reports whether a migration has already run.
func (m *Migrator) hasExecuted(ctx context.Context, name string) (bool, error) {
	var count int
	err := m.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM `+constants.TableSchemaMigrations+` WHERE name = ?`,
		name,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
