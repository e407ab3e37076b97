package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBase          string
	HTTPTimeout      time.Duration
	RetryDelay       time.Duration
	SessionDBPath    string
	LogLevel         string
	MockAPIAddr      string
	MockAPIRateLimit float64
	MockAPIBurst     int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	return Config{
		APIBase:          envOr("API_BASE", "http://localhost:3000"),
		HTTPTimeout:      envMillisOr("HTTP_TIMEOUT_MS", 10*time.Second),
		RetryDelay:       envMillisOr("RETRY_DELAY_MS", 2*time.Second),
		SessionDBPath:    envOr("SESSION_DB_PATH", "file:hanziflash.db"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		MockAPIAddr:      envOr("MOCKAPI_ADDR", ":3000"),
		MockAPIRateLimit: envFloatOr("MOCKAPI_RATE_LIMIT", 0),
		MockAPIBurst:     envIntOr("MOCKAPI_BURST", 5),
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.APIBase == "" {
		return fmt.Errorf("API_BASE cannot be empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_MS must be positive")
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("RETRY_DELAY_MS cannot be negative")
	}
	if c.SessionDBPath == "" {
		return fmt.Errorf("SESSION_DB_PATH cannot be empty")
	}
	if c.MockAPIRateLimit < 0 {
		return fmt.Errorf("MOCKAPI_RATE_LIMIT cannot be negative")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}

func envMillisOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
