// Package cudb defines contracts of the main cudb components. They are
// implemented by internal/io* packages.
package cudb

import (
	"context"

	"github.com/gnames/cudb/pkg/report"
	"github.com/gnames/cudb/pkg/snapshot"
)

// Builder loads input datasets and runs the reconciliation pipeline.
// Config is provided during construction.
type Builder interface {
	// Build returns a new snapshot with the report of recoverable
	// problems. Unless disabled by config, the snapshot is also saved to
	// a SQLite file.
	Build(ctx context.Context) (*snapshot.Snapshot, *report.Report, error)
}

// SchemaManager defines the interface for export schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and
// migrations. Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the export schema on an empty database.
	Create(ctx context.Context) error

	// Migrate updates the export schema to the latest version.
	Migrate(ctx context.Context) error
}

// Exporter copies a snapshot into PostgreSQL. Data of the previous
// export is replaced.
type Exporter interface {
	Export(ctx context.Context, s *snapshot.Snapshot) error
}
