package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabaseType   string
	DatabaseURL    string
	DatabasePath   string
	MigrationsPath string
	// SessionSize is the maximum number of questions per drill sub-session
	SessionSize int
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is loaded first if
// present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:    getEnv("DB_URL", ""),
		DatabasePath:   getEnv("DB_PATH", "./wortschatz.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		SessionSize:    getEnvInt("SESSION_SIZE", 15),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
