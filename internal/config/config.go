package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath     string
	ListenAddr string
	Editor     string
	User       string
	ListLimit  int
	LogLevel   string
	LogPretty  bool
}

// Load reads configuration from the environment, after merging in a
// .env file if one exists next to the process. Real environment
// variables win over the file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DBPath:     envOr("NOTE_DB_PATH", "notes.db"),
		ListenAddr: envOr("NOTE_LISTEN_ADDR", "127.0.0.1:8080"),
		Editor:     envOr("NOTE_EDITOR", "micro"),
		User:       os.Getenv("NOTE_USER"),
		ListLimit:  parseIntOr("NOTE_LIST_LIMIT", 10),
		LogLevel:   os.Getenv("NOTE_LOG_LEVEL"),
		LogPretty:  parseBool(os.Getenv("NOTE_LOG_PRETTY")),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}

func parseBool(v string) bool {
	return v == "1" || v == "true" || v == "TRUE" || v == "True"
}
