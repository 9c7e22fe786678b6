package config

import (
	"os"
)

// Config holds the application configuration.
type Config struct {
	Port          string
	GoogleAPIKey  string
	DatabaseURL   string
	RedisAddr     string
	OpenF1BaseURL string
}

// Load reads the configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		GoogleAPIKey:  getEnv("GOOGLE_API_KEY", ""),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		OpenF1BaseURL: getEnv("OPENF1_BASE_URL", "https://api.openf1.org/v1"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
