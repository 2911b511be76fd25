package ioconfig

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFiles are dotenv files read from the working directory. Variables
// that are already set in the environment are not overridden, and an
// earlier file wins over a later one.
var EnvFiles = []string{".env.local", ".env"}

// LoadEnvFiles exports CUDB_ variables from dotenv files found in dir.
// Returns the list of loaded files.
func LoadEnvFiles(dir string) []string {
	var res []string
	for _, v := range EnvFiles {
		path := filepath.Join(dir, v)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Cannot load env file", "path", path, "error", err)
			continue
		}
		res = append(res, path)
	}
	return res
}
