package config

import (
	"os"
	"strconv"
	"time"
)

// Loaded from the environment once at startup. godotenv is expected to have
// populated the process env before the first read (see main.go).
var (
	BaseURL = getEnv("API_BASE_URL", "http://localhost:8000/api/v1")

	OrderBookPollInterval = getDuration("ORDERBOOK_POLL_INTERVAL", 3*time.Second)
	StatsPollInterval     = getDuration("STATS_POLL_INTERVAL", 30*time.Second)
	TradesPollInterval    = getDuration("TRADES_POLL_INTERVAL", 5*time.Second)

	HTTPTimeout = getDuration("HTTP_TIMEOUT", 10*time.Second)

	DebugMode = getBool("DEBUG_MODE", false)

	MetricsAddr = getEnv("METRICS_ADDR", ":8080")
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
