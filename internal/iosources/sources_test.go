package iosources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/cudb/pkg/config"
	"github.com/gnames/cudb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
version: v0.2.0
datasets:
  cu_lookup:
    file: cu_lookup.csv
  pop_lookup:
    file: pop_lookup.csv
  cu_metrics:
    file: metrics.xlsx
    sheet: Metrics
    cu_key: CU_ID
    lookup_column: CU_ID_Alt2
`

func writeSources(t *testing.T, dir, content string) string {
	path := filepath.Join(dir, "sources.yaml")
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func TestLoadSourcesConfig_Minimal(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	tmpDir := t.TempDir()
	path := writeSources(t, tmpDir, minimalYAML)

	cfg, err := loadSourcesConfig(path, "")
	require.NoError(t, err)
	assert.Equal(t, tmpDir, cfg.Parent)
	require.Len(t, cfg.Datasets, 3)
	assert.Equal(t,
		filepath.Join(tmpDir, "metrics.xlsx"),
		cfg.Datasets["cu_metrics"].File,
	)
	assert.Equal(t, "Metrics", cfg.Datasets["cu_metrics"].Sheet)
	assert.Equal(t, "CU_ID_Alt2", cfg.Keys()["cu_metrics"].LookupColumn)
}

func TestLoadSourcesConfig_Parent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0755))

	// data_dir of config.yaml is used when parent is empty
	path := writeSources(t, tmpDir, minimalYAML)
	cfg, err := loadSourcesConfig(path, dataDir)
	require.NoError(t, err)
	assert.Equal(t,
		filepath.Join(dataDir, "cu_lookup.csv"),
		cfg.Datasets["cu_lookup"].File,
	)

	// parent of sources.yaml wins over data_dir
	other := filepath.Join(tmpDir, "other")
	require.NoError(t, os.MkdirAll(other, 0755))
	path = writeSources(t, tmpDir, "parent: "+other+"\n"+minimalYAML)
	cfg, err = loadSourcesConfig(path, dataDir)
	require.NoError(t, err)
	assert.Equal(t, other, cfg.Parent)
}

func TestLoadSourcesConfig_Errors(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tests := []struct {
		msg     string
		content string
		errMsg  string
	}{
		{"bad yaml", "version: [", "failed to parse sources config"},
		{"old version", "version: v0.1.0\n", "too old"},
		{"no metrics", `
version: v0.2.0
datasets:
  cu_lookup:
    file: a.csv
  pop_lookup:
    file: b.csv
`, "cu_metrics"},
		{"no parent", "parent: /nonexistent/directory/that/does/not/exist\n" +
			minimalYAML, "parent directory does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			path := writeSources(t, t.TempDir(), tt.content)
			_, err := loadSourcesConfig(path, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadSourcesConfig_FileNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	_, err := loadSourcesConfig("nonexistent.yaml", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read sources config file")
}

func TestLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	tmpDir := t.TempDir()
	path := writeSources(t, tmpDir, minimalYAML)

	cfg := config.New()
	cfg.Update([]config.Option{config.OptBuildSourcesFile(path)})
	res, err := New(cfg).Load()
	require.NoError(t, err)
	assert.Len(t, res.DatasetNames(), 3)

	cfg.Update([]config.Option{
		config.OptBuildSourcesFile(filepath.Join(tmpDir, "none.yaml")),
	})
	_, err = New(cfg).Load()
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SourcesConfigError, gnErr.Code)
}
