package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment files consulted in the source directory, in order.
var dotEnvFiles = []string{".env", ".env.local"}

// Loads .env files from dir into the process environment.
//
// Variables already present in the environment are never overwritten, so a
// real EMSCRIPTEN always wins over one written in a file. Missing files are
// skipped silently.
func LoadDotEnv(dir string) error {
	for _, name := range dotEnvFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrConfigFile, path, err)
		}
		slog.Debug("loaded environment file", "path", path)
	}
	return nil
}
