// Package config loads the application configuration from defaults, an optional
// YAML file, a .env file and LEDGER_-prefixed environment variables.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"fjacquet/poultry-ledger/internal/logging"
)

// LoadEnv loads environment variables from a .env file in the current or parent
// directory. Variables already set in the environment win. It returns the file
// loaded, or "" when none was found.
func LoadEnv(logger logging.Logger) string {
	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			logger.WithError(err).Warn("Error loading .env file",
				logging.Field{Key: logging.FieldFile, Value: envFile})
			return ""
		}
		logger.Debug("Loaded environment variables",
			logging.Field{Key: logging.FieldFile, Value: envFile})
		return envFile
	}
	return ""
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
