package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	CorpusDir            string
	LibraryDBPath        string
	LLMBaseURL           string
	LLMModelName         string
	LLMAPIKey            string
	APIPort              string
	ContextSize          int
	MinPhraseOccurrences int
	LogLevel             slog.Level
	LogFormat            string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		CorpusDir:     getEnv("CORPUS_DIR", "./data/corpora"),
		LibraryDBPath: getEnv("LIBRARY_DB_PATH", "./data/series_library.db"),
		LLMBaseURL:    getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:  getEnv("LLM_MODEL", "Llama-3.1-8B-Instruct"),
		LLMAPIKey:     getEnv("LLM_API_KEY", "dummy-key"),
		APIPort:       getEnv("API_PORT", "9000"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}

	// CONTEXT_SIZE controls how many characters of surrounding text the
	// context inspector returns on each side of a match.
	contextSize, err := getEnvInt("CONTEXT_SIZE", 200)
	if err != nil {
		return nil, err
	}
	if contextSize < 1 {
		return nil, fmt.Errorf("CONTEXT_SIZE must be greater than 0")
	}
	cfg.ContextSize = contextSize

	minOccurrences, err := getEnvInt("MIN_PHRASE_OCCURRENCES", 20)
	if err != nil {
		return nil, err
	}
	if minOccurrences < 1 {
		return nil, fmt.Errorf("MIN_PHRASE_OCCURRENCES must be greater than 0")
	}
	cfg.MinPhraseOccurrences = minOccurrences

	cfg.LogLevel = parseLogLevel(getEnv("LOG_LEVEL", "info"))

	// Create the library data directory if it doesn't exist
	dataDir := filepath.Dir(cfg.LibraryDBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

// parseLogLevel converts a level name to a slog.Level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
