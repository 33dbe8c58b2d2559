package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	Port            int
	DatabaseURL     string // Postgres; when empty the local SQLite file is used
	DBPath          string
	NatsURL         string // when empty events are disabled
	NatsToken       string
	LogLevel        string
	AnthropicAPIKey string
	AnthropicModel  string
	BatchSize       int
	MaxTokens       int
	APIToken        string
	QuestionsFile   string
	Debounce        time.Duration
}

func Load() Config {
	return Config{
		Port:            envInt("MOFASA_PORT", 8760),
		DatabaseURL:     envStr("DATABASE_URL", ""),
		DBPath:          envStr("MOFASA_DB", defaultDBPath()),
		NatsURL:         envStr("NATS_URL", ""),
		NatsToken:       envStr("NATS_TOKEN", ""),
		LogLevel:        envStr("LOG_LEVEL", "info"),
		AnthropicAPIKey: envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  envStr("MOFASA_MODEL", "claude-sonnet-4-20250514"),
		BatchSize:       batchSize(envInt("MOFASA_BATCH_SIZE", 5)),
		MaxTokens:       envInt("MOFASA_MAX_TOKENS", 2048),
		APIToken:        envStr("MOFASA_API_TOKEN", ""),
		QuestionsFile:   envStr("MOFASA_QUESTIONS", ""),
		Debounce:        time.Duration(envInt("MOFASA_DEBOUNCE_MS", 400)) * time.Millisecond,
	}
}

// batchSize keeps only the supported sizes.
func batchSize(n int) int {
	switch n {
	case 3, 5, 7, 10:
		return n
	}
	return 5
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".mofasa", "mofasa.db")
	}
	return filepath.Join(home, ".mofasa", "mofasa.db")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
