package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"

	"dmappex-backend/internal/shared/telemetry"
)

// loadEnvFiles loads the given dotenv files when present. godotenv never
// overrides variables already set in the environment.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		err := godotenv.Load(path)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		telemetry.Warn("config.dotenv_skipped", map[string]any{
			"path":  path,
			"error": err.Error(),
		})
	}
}
