// Package iofs prepares directories and default configuration files of
// cudb.
package iofs

import (
	_ "embed"
	"os"

	"github.com/gnames/cudb/pkg/config"
)

// ConfigYAML is the template of config.yaml.
//
//go:embed config.yaml
var ConfigYAML string

// SourcesYAML is the template of sources.yaml.
//
//go:embed sources.yaml
var SourcesYAML string

// EnsureDirs creates config, cache and log directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes config.yaml template unless the file exists.
func EnsureConfigFile(homeDir string) error {
	return ensureFile(config.ConfigFilePath(homeDir), ConfigYAML)
}

// EnsureSourcesFile writes sources.yaml template unless the file exists.
func EnsureSourcesFile(homeDir string) error {
	return ensureFile(config.SourcesFilePath(homeDir), SourcesYAML)
}

func ensureFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return CopyFileError(path, err)
	}
	return nil
}
