package db

import (
	"context"

	"github.com/gnames/cudb/pkg/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes the pgxpool.Pool
// for the export components (SchemaManager, Exporter) to execute their
// specialized SQL operations internally.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool. Components use it for
	// transactions, bulk inserts (CopyFrom), and custom queries.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables in the public schema.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables in the public schema.
	// Used during schema initialization when overwriting existing data.
	DropAllTables(ctx context.Context) error

	// TruncateTables removes all rows from given tables. Used before a
	// new export replaces the previous one. With a non-nil tx the rows
	// are removed only when tx commits.
	TruncateTables(ctx context.Context, tx pgx.Tx, tables ...string) error
}
