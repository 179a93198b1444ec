// Package database provides database access and management for the settings
// store.
package database

import (
	"context"
	"database/sql"
)

// SQLDatabase defines the interface for database operations used by the
// application. It abstracts the underlying *sql.DB to allow test doubles.
type SQLDatabase interface {
	// BeginTx starts a transaction with the provided context and options.
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)

	// Close closes the database, releasing any open resources.
	Close() error

	// ExecContext executes a query without returning any rows.
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

	// PingContext verifies a connection to the database is still alive.
	PingContext(ctx context.Context) error

	// QueryContext executes a query that returns rows.
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)

	// QueryRowContext executes a query expected to return at most one row.
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Ensure sql.DB implements SQLDatabase.
var _ SQLDatabase = (*sql.DB)(nil)
