// Package config loads runtime settings from the environment.
//
// Environment variables:
//
//	PORT             server listen port (default: 8080)
//	DB_PATH          SQLite database file (default: ./data/splitter.db)
//	LOG_LEVEL        debug, info, warn, error (default: info)
//	LOG_FORMAT       text or json (default: text)
//	GATEWAY_URL      base URL used by splitctl (default: http://localhost:8080)
//	GATEWAY_TIMEOUT  per-call timeout used by splitctl (default: 10s)
//
// A .env file, when present, fills in variables that are not already set.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings shared by the server and the CLI.
type Config struct {
	Port           int
	DBPath         string
	LogLevel       string
	LogFormat      string
	GatewayURL     string
	GatewayTimeout time.Duration
}

// Load reads the given env files (".env" when none are named), then the
// process environment. Missing files are skipped; variables already in the
// environment take precedence over file values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := Config{
		DBPath:     getEnv("DB_PATH", "./data/splitter.db"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "text"),
		GatewayURL: getEnv("GATEWAY_URL", "http://localhost:8080"),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}
	cfg.Port = port

	timeout, err := time.ParseDuration(getEnv("GATEWAY_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		return Config{}, fmt.Errorf("invalid GATEWAY_TIMEOUT %q", os.Getenv("GATEWAY_TIMEOUT"))
	}
	cfg.GatewayTimeout = timeout

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("invalid LOG_FORMAT %q: want text or json", cfg.LogFormat)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
