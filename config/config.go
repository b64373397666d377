// Package config loads service configuration from the environment, with
// optional .env file support for local development.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// HTTP
	HTTPAddr string

	// Candle providers
	FinnhubAPIKey  string // empty disables the live provider (demo-only mode)
	FinnhubBaseURL string

	// Candle cache
	RedisAddr         string // empty selects the in-memory cache
	RedisPassword     string
	CacheTTLDefault   time.Duration
	CacheTTLMetals    time.Duration
	CacheTTLCommodity time.Duration

	// Pipeline
	CandleLimit int // candles requested per analysis

	// Level stream
	StreamInterval time.Duration

	// Persistence
	SQLitePath string

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is merged in first if
// present; absence is not an error.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("[config] loaded .env file")
	}

	return &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		FinnhubAPIKey:  getEnv("FINNHUB_API_KEY", ""),
		FinnhubBaseURL: getEnv("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"),

		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		CacheTTLDefault:   getEnvDuration("CACHE_TTL_DEFAULT", 20*time.Second),
		CacheTTLMetals:    getEnvDuration("CACHE_TTL_METALS", 15*time.Second),
		CacheTTLCommodity: getEnvDuration("CACHE_TTL_COMMODITY", 5*time.Second),

		CandleLimit: getEnvInt("CANDLE_LIMIT", 500),

		StreamInterval: getEnvDuration("STREAM_INTERVAL", 15*time.Second),

		SQLitePath: getEnv("SQLITE_PATH", "data/summaries.db"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[config] invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[config] invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return d
}
