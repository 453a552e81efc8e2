package app

import (
	"os"
	"path/filepath"
)

type Config struct {
	APIBaseURL string // Base URL of the phonebook API (default: http://localhost:8081)
	DataDir    string // Directory for the token store, key file and contact cache
	Env        string // Environment (dev, prod) (default: dev)
	LogLevel   string // Log level (debug, info, warn, error) (default: info)
	LogFormat  string // Log format (json, text) (default: text)
}

func LoadConfig() Config {
	return Config{
		APIBaseURL: getEnvOrDefault("PHONEBOOK_API_URL", "http://localhost:8081"),
		DataDir:    getEnvOrDefault("PHONEBOOK_DATA_DIR", defaultDataDir()),
		Env:        getEnvOrDefault("ENV", "dev"),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:  getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

// defaultDataDir is ~/.phonebook, falling back to the working directory
// when the home directory cannot be determined.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".phonebook"
	}
	return filepath.Join(home, ".phonebook")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
