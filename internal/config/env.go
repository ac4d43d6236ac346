package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// envFiles are loaded in order; values already present in the process
// environment (or set by an earlier file) are never overridden.
var envFiles = []string{".env.local", ".env"}

// loadEnvFiles loads the .env files that exist in the working directory and
// returns the names that were applied.
func loadEnvFiles() ([]string, error) {
	var loaded []string
	for _, name := range envFiles {
		if _, err := os.Stat(name); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return loaded, err
		}
		slog.Debug("Loaded environment file", "path", name)
		loaded = append(loaded, name)
	}
	return loaded, nil
}
