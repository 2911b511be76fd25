package config

import (
	"path/filepath"
)

var (
	// MinVersionSources determines the oldest version of sources.yaml
	// that is still compatible with cudb. Newer versions are all supported.
	MinVersionSources = "v0.2.0"
	// AppName is used in generating file system paths.
	AppName = "cudb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/cudb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/cudb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/cudb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/cudb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SourcesFilePath returns the full path to the sources.yaml file.
// Returns ~/.config/cudb/sources.yaml by default.
func SourcesFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "sources.yaml")
}

// SnapshotFilePath returns the default location of the SQLite snapshot.
// Returns ~/.cache/cudb/snapshot.sqlite by default.
func SnapshotFilePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "snapshot.sqlite")
}

// SourcesFile returns the sources.yaml location, taking into account the
// runtime override.
func (c *Config) SourcesFile() string {
	if c.Build.SourcesFile != "" {
		return c.Build.SourcesFile
	}
	return SourcesFilePath(c.HomeDir)
}

// SnapshotFile returns the snapshot location, taking into account the
// runtime override.
func (c *Config) SnapshotFile() string {
	if c.Build.SnapshotFile != "" {
		return c.Build.SnapshotFile
	}
	return SnapshotFilePath(c.HomeDir)
}
