package cmd

import (
	"bytes"
	"testing"

	"github.com/gnames/cudb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetBuildCmd_Exists verifies getBuildCmd returns
// a valid command.
func TestGetBuildCmd_Exists(t *testing.T) {
	cmd := getBuildCmd()
	require.NotNil(t, cmd, "Build command should exist")
	assert.Equal(t, "build", cmd.Use)
	assert.NotNil(t, cmd.RunE, "RunE should be set")
	assert.Contains(t, cmd.Long, "sources.yaml",
		"Long description should mention sources.yaml")
}

// TestGetBuildCmd_Flags verifies flags and their short forms.
func TestGetBuildCmd_Flags(t *testing.T) {
	cmd := getBuildCmd()

	tests := []struct {
		name, short, def string
	}{
		{"sources", "s", ""},
		{"data-dir", "d", ""},
		{"snapshot", "o", ""},
		{"no-snapshot", "n", "false"},
	}
	for _, v := range tests {
		flag := cmd.Flags().Lookup(v.name)
		require.NotNil(t, flag, v.name)
		assert.Equal(t, v.short, flag.Shorthand, v.name)
		assert.Equal(t, v.def, flag.DefValue, v.name)
	}
}

// TestGetBuildCmd_HelpText verifies help text content.
func TestGetBuildCmd_HelpText(t *testing.T) {
	cmd := getBuildCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "Examples:")
	assert.Contains(t, helpText, "cudb build --no-snapshot")
}

// TestBuildFlags_Options verifies only changed flags become options.
func TestBuildFlags_Options(t *testing.T) {
	cmd := getBuildCmd()
	err := cmd.ParseFlags([]string{"-s", "/tmp/sources.yaml", "-o", "/tmp/s.sqlite"})
	require.NoError(t, err)

	var flags buildFlags
	flags.sources = "/tmp/sources.yaml"
	flags.snapshot = "/tmp/s.sqlite"
	flags.dataDir = "/ignored"

	c := config.New()
	c.Update(flags.options(cmd))
	assert.Equal(t, "/tmp/sources.yaml", c.Build.SourcesFile)
	assert.Equal(t, "/tmp/s.sqlite", c.Build.SnapshotFile)
	assert.Empty(t, c.Build.DataDir)
}

func TestSplitArgs(t *testing.T) {
	res := splitArgs([]string{"C1,C2", " C3 ", ",", "C4,"})
	assert.Equal(t, []string{"C1", "C2", "C3", "C4"}, res)
	assert.Empty(t, splitArgs(nil))
}
