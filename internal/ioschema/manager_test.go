package ioschema

import (
	"context"
	"testing"

	"github.com/gnames/cudb/internal/iodb"
	"github.com/gnames/cudb/internal/iotesting"
	"github.com/gnames/cudb/pkg/cudb"
	"github.com/gnames/cudb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestManager_ImplementsInterface verifies manager
// implements cudb.SchemaManager interface.
func TestManager_ImplementsInterface(t *testing.T) {
	op := iodb.NewPgxOperator()
	var _ cudb.SchemaManager = NewManager(op)
}

// TestManager_NotConnected verifies that the manager refuses to work
// without a connection.
func TestManager_NotConnected(t *testing.T) {
	mgr := NewManager(iodb.NewPgxOperator())
	ctx := context.Background()
	assert.Error(t, mgr.Create(ctx))
	assert.Error(t, mgr.Migrate(ctx))
}

func TestManager_CreateMigrate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx := context.Background()
	err := op.Connect(ctx, iotesting.GetTestDatabaseConfig())
	require.NoError(t, err)
	defer op.Close()

	require.NoError(t, op.DropAllTables(ctx))

	mgr := NewManager(op)
	require.NoError(t, mgr.Create(ctx))
	for _, tbl := range schema.TableNames() {
		exists, err := op.TableExists(ctx, tbl)
		require.NoError(t, err)
		assert.True(t, exists, tbl)
	}

	// migration of an up-to-date schema is a no-op
	require.NoError(t, mgr.Migrate(ctx))
}
