package iosources

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/cudb/pkg/config"
	"github.com/gnames/cudb/pkg/sources"
	"gopkg.in/yaml.v3"
)

// loadSourcesConfig reads and validates sources.yaml from disk. The parent
// directory is taken from the file itself, then from dataDir, then from
// the location of sources.yaml. Dataset paths of the result are resolved
// against the parent directory.
func loadSourcesConfig(path, dataDir string) (*sources.SourcesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources config file: %w", err)
	}

	var cfg sources.SourcesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sources config: %w", err)
	}

	if err := cfg.Validate(config.MinVersionSources); err != nil {
		return nil, err
	}

	if cfg.Parent == "" {
		cfg.Parent = dataDir
	}
	if cfg.Parent == "" {
		cfg.Parent = filepath.Dir(path)
	}
	if err := resolvePaths(&cfg); err != nil {
		return nil, err
	}

	for _, w := range cfg.Warnings {
		slog.Warn("Sources configuration warning",
			"dataset", w.Dataset,
			"field", w.Field,
			"message", w.Message,
			"suggestion", w.Suggestion)
	}

	return &cfg, nil
}

// resolvePaths expands '~' and makes dataset paths absolute. The parent
// directory must exist, dataset files are checked when they are read.
func resolvePaths(cfg *sources.SourcesConfig) error {
	parent, err := expandHome(cfg.Parent)
	if err != nil {
		return err
	}

	stat, err := os.Stat(parent)
	if os.IsNotExist(err) {
		return fmt.Errorf("parent directory does not exist: %s", cfg.Parent)
	}
	if err != nil {
		return fmt.Errorf("failed to check parent directory: %w", err)
	}
	if !stat.IsDir() {
		return fmt.Errorf("parent path is not a directory: %s", cfg.Parent)
	}
	cfg.Parent = parent

	for name, d := range cfg.Datasets {
		file, err := expandHome(d.File)
		if err != nil {
			return fmt.Errorf("dataset %s: %w", name, err)
		}
		d.File = sources.ResolvePath(parent, file)
		cfg.Datasets[name] = d
	}
	return nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand ~: %w", err)
	}
	return filepath.Join(homeDir, path[2:]), nil
}
