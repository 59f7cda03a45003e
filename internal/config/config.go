// Package config loads and validates application configuration from
// environment variables, optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Mode names the persistence backend a Config selects.
const (
	ModeRemote = "remote"
	ModeLocal  = "local"
)

// Config holds all configuration values shared by the API server and tripctl.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	CORSOrigins []string

	// DatabaseURL is the Postgres connection string. When empty the planner
	// runs against the local file store in LocalStoreDir.
	DatabaseURL string

	// LocalStoreDir is where the local backend keeps its files. Defaults to ".tripflow".
	LocalStoreDir string

	// GeminiAPIKey enables itinerary generation. Read from GEMINI_API_KEY,
	// falling back to API_KEY. Empty disables generation.
	GeminiAPIKey string

	// GeminiModel defaults to "gemini-2.5-flash".
	GeminiModel string

	// DefaultUserID identifies callers that send no X-User-ID header.
	DefaultUserID string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Mode reports which persistence backend the configuration selects.
func (c Config) Mode() string {
	if c.DatabaseURL != "" {
		return ModeRemote
	}
	return ModeLocal
}

// AIEnabled reports whether a Gemini credential is configured.
func (c Config) AIEnabled() bool {
	return c.GeminiAPIKey != ""
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first; variables already set in the environment win.
// Missing database or AI settings are valid and select degraded modes.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		LocalStoreDir: getEnv("LOCAL_STORE_DIR", ".tripflow"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		DefaultUserID: getEnv("DEFAULT_USER_ID", "mock-user"),
	}

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		return Config{}, fmt.Errorf("config.Load: MAX_BODY_BYTES must be a positive integer, got %q", os.Getenv("MAX_BODY_BYTES"))
	}
	cfg.MaxBodyBytes = maxBody

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
