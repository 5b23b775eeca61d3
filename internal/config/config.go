package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort     int
	DatabasePath   string
	JWTSecret      string
	LogLevel       string
	EventRetention time.Duration // how long activity events are kept
	RetentionCron  string        // cron expression for the retention sweep
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory is read first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	retentionDaysStr := getEnv("EVENT_RETENTION_DAYS", "30")
	retentionDays, err := strconv.Atoi(retentionDaysStr)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:     port,
		DatabasePath:   getEnv("DATABASE_PATH", "./taskflow.db"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		EventRetention: time.Duration(retentionDays) * 24 * time.Hour,
		RetentionCron:  getEnv("RETENTION_CRON", "0 3 * * *"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
