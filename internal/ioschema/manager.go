// Package ioschema implements SchemaManager interface for
// export schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/gnames/cudb/pkg/cudb"
	"github.com/gnames/cudb/pkg/db"
	"github.com/gnames/cudb/pkg/schema"
)

// manager implements the cudb.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) cudb.SchemaManager {
	return &manager{operator: op}
}

// Create creates the export schema using GORM AutoMigrate and adds
// indexes of the models. Existing tables must be dropped by the caller.
func (m *manager) Create(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	gormDB, err := openGORM(pool)
	if err != nil {
		return GORMConnectionError(err)
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}

	return m.createIndexes(ctx)
}

// Migrate updates the export schema to the latest version
// using GORM AutoMigrate. Data is preserved.
func (m *manager) Migrate(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	gormDB, err := openGORM(pool)
	if err != nil {
		return GORMConnectionError(err)
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}

	return m.createIndexes(ctx)
}

func (m *manager) createIndexes(ctx context.Context) error {
	pool := m.operator.Pool()
	for _, stmt := range schema.IndexDDL() {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return IndexError(indexTable(stmt), stmt, err)
		}
	}
	slog.Info("Export schema is ready", "tables", len(schema.AllModels()))
	return nil
}
