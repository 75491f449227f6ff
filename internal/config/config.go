// Package config loads application configuration from the environment.
package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Gemini
	GoogleAPIKey string
	GeminiModel  string

	// Feature flags (cost control around the Gemini calls)
	EconomyMode bool
	AllowImages bool

	// Login credentials: fixed username → password pairs.
	// This is a two-person household app; there is no user registration.
	Users map[string]string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "financas"),
		DBPassword: getEnv("DB_PASSWORD", "financas"),
		DBName:     getEnv("DB_NAME", "financas"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		GoogleAPIKey: getEnv("GOOGLE_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		EconomyMode: getEnv("ECONOMY_MODE", "false") == "true",
		AllowImages: getEnv("ALLOW_IMAGES", "true") != "false",

		Users: map[string]string{
			"NARDOTO": getEnv("USER_NARDOTO_PASSWORD", "nardoto123"),
			"MARINA":  getEnv("USER_MARINA_PASSWORD", "marina123"),
		},
	}

	return config, nil
}

// PasswordFor returns the configured password for a username
// (case-insensitive) and whether the user exists.
func (c *Config) PasswordFor(username string) (string, bool) {
	password, ok := c.Users[strings.ToUpper(username)]
	return password, ok
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
