package ioconfig_test

import (
	"os"
	"testing"

	"github.com/gnames/cudb/internal/ioconfig"
	"github.com/gnames/cudb/internal/iotesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CUDB_DATABASE_HOST", "from-env")
	// registers cleanup, the variables must be absent for godotenv
	for _, v := range []string{"CUDB_DATABASE_USER", "CUDB_DATABASE_PORT"} {
		t.Setenv(v, "")
		require.NoError(t, os.Unsetenv(v))
	}

	iotesting.WriteFile(t, dir, ".env",
		"CUDB_DATABASE_HOST=from-file\nCUDB_DATABASE_USER=env-user\nCUDB_DATABASE_PORT=5000\n")
	iotesting.WriteFile(t, dir, ".env.local", "CUDB_DATABASE_PORT=6000\n")

	files := ioconfig.LoadEnvFiles(dir)
	assert.Len(t, files, 2)

	cfg, err := ioconfig.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Host)
	assert.Equal(t, "env-user", cfg.Database.User)
	assert.Equal(t, 6000, cfg.Database.Port)
}

func TestLoadEnvFilesNone(t *testing.T) {
	assert.Empty(t, ioconfig.LoadEnvFiles(t.TempDir()))
}
