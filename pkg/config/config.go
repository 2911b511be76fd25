// Package config provides configuration management for cudb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Log: level, format, destination
//   - Build: data_dir
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Build.SourcesFile, SnapshotFile, WithoutSnapshot (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use CUDB_ prefix with underscores for nesting:
//
//	CUDB_DATABASE_HOST=localhost
//	CUDB_DATABASE_PORT=5432
//	CUDB_LOG_LEVEL=info
//	CUDB_BUILD_DATA_DIR=/data/cu
//	CUDB_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete cudb configuration.
type Config struct {
	// Database contains settings of the PostgreSQL export target.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Build contains settings of the reconciliation build.
	Build BuildConfig `mapstructure:"build" yaml:"build"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of input files read concurrently.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of rows sent per COPY during export.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// BuildConfig contains settings of the build command.
type BuildConfig struct {
	// DataDir is the directory for relative input paths of sources.yaml.
	// Empty means the directory of sources.yaml.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// SourcesFile overrides the location of sources.yaml.
	// Runtime-only field.
	SourcesFile string `mapstructure:"sources_file" yaml:"sources_file"`

	// SnapshotFile overrides the location of the SQLite snapshot.
	// Runtime-only field.
	SnapshotFile string `mapstructure:"snapshot_file" yaml:"snapshot_file"`

	// WithoutSnapshot is true when the snapshot should not be saved.
	// Runtime-only field.
	WithoutSnapshot bool `mapstructure:"without_snapshot" yaml:"without_snapshot"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "cudb",
			SSLMode:   "disable",
			BatchSize: 10_000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
