// Package ioconfig loads config.yaml and CUDB_ environment variables.
// This is an impure package that handles file system and environment
// operations.
package ioconfig

import (
	"os"
	"strings"

	"github.com/gnames/cudb/internal/iofs"
	"github.com/gnames/cudb/pkg/config"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override
// config.yaml settings.
const EnvPrefix = "CUDB"

// Load reads config.yaml from the home directory and applies environment
// variables. A missing config.yaml is not an error: defaults and
// environment variables are used instead. The result contains only
// persistent fields, apply it with Config.ToOptions.
func Load(homeDir string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(homeDir)
	v := viper.New()
	v.SetConfigType("yaml")

	initEnvVars(v)

	if _, err = os.Stat(cfgPath); err == nil {
		v.SetConfigFile(cfgPath)
		if err = v.ReadInConfig(); err != nil {
			return nil, iofs.ReadFileError(cfgPath, err)
		}
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are
	// allowed. These match the fields included in config.ToOptions().
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	_ = v.BindEnv("database.host", "CUDB_DATABASE_HOST")
	_ = v.BindEnv("database.port", "CUDB_DATABASE_PORT")
	_ = v.BindEnv("database.user", "CUDB_DATABASE_USER")
	_ = v.BindEnv("database.password", "CUDB_DATABASE_PASSWORD")
	_ = v.BindEnv("database.database", "CUDB_DATABASE_DATABASE")
	_ = v.BindEnv("database.ssl_mode", "CUDB_DATABASE_SSL_MODE")
	_ = v.BindEnv("database.batch_size", "CUDB_DATABASE_BATCH_SIZE")

	// Log configuration
	_ = v.BindEnv("log.level", "CUDB_LOG_LEVEL")
	_ = v.BindEnv("log.format", "CUDB_LOG_FORMAT")
	_ = v.BindEnv("log.destination", "CUDB_LOG_DESTINATION")

	// Build configuration
	_ = v.BindEnv("build.data_dir", "CUDB_BUILD_DATA_DIR")

	// General configuration
	_ = v.BindEnv("jobs_number", "CUDB_JOBS_NUMBER")

	v.AutomaticEnv()
}
