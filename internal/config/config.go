package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	KVBackendSQLite = "sqlite"
	KVBackendBadger = "badger"
)

type Config struct {
	Port          string
	KVBackend     string
	DBPath        string
	BadgerDir     string
	MigrationsDir string
	JWTSecret     string
	TokenTTL      time.Duration
	CORSOrigins   []string
	OpenAIAPIKey  string
	OpenAIModel   string
}

func Load() Config {
	return Config{
		Port:          getEnv("PORT", "8080"),
		KVBackend:     getEnv("KV_BACKEND", KVBackendSQLite),
		DBPath:        getEnv("DB_PATH", "./data/wellspace.db"),
		BadgerDir:     getEnv("BADGER_DIR", "./data/badger"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "./migrations"),
		JWTSecret:     getEnv("JWT_SECRET", "change-this-secret"),
		TokenTTL:      time.Duration(getEnvInt("TOKEN_TTL_HOURS", 72)) * time.Hour,
		CORSOrigins:   getEnvList("CORS_ORIGINS", []string{"http://localhost:5173", "http://127.0.0.1:5173"}),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
