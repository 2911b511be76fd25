package iosources

import (
	"github.com/gnames/cudb/pkg/config"
	"github.com/gnames/cudb/pkg/sources"
)

type iosources struct {
	cfg *config.Config
}

// New returns a loader of sources.yaml configured by cfg.
func New(cfg *config.Config) sources.Sources {
	res := iosources{cfg: cfg}
	return &res
}

// Load reads sources.yaml, validates it and resolves dataset paths.
func (s *iosources) Load() (*sources.SourcesConfig, error) {
	sourcesPath := s.cfg.SourcesFile()
	sourcesConfig, err := loadSourcesConfig(sourcesPath, s.cfg.Build.DataDir)
	if err != nil {
		return nil, SourcesConfigError(sourcesPath, err)
	}
	return sourcesConfig, nil
}
