package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration, read from the environment with
// an optional .env file on top.
type Config struct {
	APIBaseURL  string
	TokensFile  string
	DatabaseURL string
	LogLevel    string
	HTTPTimeout time.Duration
}

// Load reads the configuration. A missing .env file is not an error;
// plain environment variables are enough.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:8000"),
		TokensFile:  getEnv("TOKENS_FILE", defaultTokensFile()),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPTimeout: time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func defaultTokensFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tokens.json"
	}

	return filepath.Join(home, ".vocab-bot", "tokens.json")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
