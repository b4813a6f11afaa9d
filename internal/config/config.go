package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime settings, sourced from the environment with
// sensible defaults. A .env file in the working directory is honored when
// present.
type Config struct {
	// Storage
	Backend  string // "json" or "sqlite"
	DataFile string // snapshot path for the json backend
	DBPath   string // database path for the sqlite backend

	// Logging
	LogLevel string
}

// Load reads configuration from the environment.
func Load() *Config {
	_ = godotenv.Load()

	dataDir := defaultDataDir()
	return &Config{
		Backend:  getEnv("LABOURA_BACKEND", "json"),
		DataFile: getEnv("LABOURA_DATA_FILE", filepath.Join(dataDir, "data.json")),
		DBPath:   getEnv("LABOURA_DB_PATH", filepath.Join(dataDir, "laboura.db")),
		LogLevel: getEnv("LABOURA_LOG_LEVEL", "warn"),
	}
}

// Validate checks the configuration and returns an error describing every
// problem found.
func (c *Config) Validate() error {
	var problems []string

	switch c.Backend {
	case "json":
		if c.DataFile == "" {
			problems = append(problems, "data file path cannot be empty with the json backend")
		}
	case "sqlite":
		if c.DBPath == "" {
			problems = append(problems, "database path cannot be empty with the sqlite backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid backend %q: must be json or sqlite", c.Backend))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level %q", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".laboura")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
