package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const devJWTSecret = "dev-secret-change-me"

type Config struct {
	Env          string
	Port         string
	DBDriver     string
	DBDSN        string
	JWTSecret    string
	TokenTTL     time.Duration
	RedisAddr    string
	KafkaBrokers []string
	KafkaTopic   string
	RateLimit    float64
	RateBurst    int
	RequireAuth  bool
	LogLevel     zerolog.Level
}

// Load reads configuration from the environment, after loading .env if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:          getenv("ENV", "prod"),
		Port:         getenv("PORT", "8080"),
		DBDriver:     getenv("DB_DRIVER", "sqlite3"),
		DBDSN:        getenv("DB_DSN", "./portfolio.db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getenv("KAFKA_TOPIC", "portfolio-topic"),
		RequireAuth:  os.Getenv("REQUIRE_AUTH") == "true",
	}

	if cfg.DBDriver != "sqlite3" && cfg.DBDriver != "mysql" {
		return nil, fmt.Errorf("DB_DRIVER must be sqlite3 or mysql, got %q", cfg.DBDriver)
	}

	// the built-in key is only allowed when ENV names a dev or test setup
	if cfg.JWTSecret == "" {
		if cfg.Env != "dev" && cfg.Env != "test" {
			return nil, fmt.Errorf("JWT_SECRET is required when ENV=%s", cfg.Env)
		}
		cfg.JWTSecret = devJWTSecret
	}

	var err error
	if cfg.TokenTTL, err = time.ParseDuration(getenv("TOKEN_TTL", "30m")); err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}
	if cfg.RateLimit, err = strconv.ParseFloat(getenv("RATE_LIMIT", "10"), 64); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT: %w", err)
	}
	if cfg.RateBurst, err = strconv.Atoi(getenv("RATE_BURST", "20")); err != nil {
		return nil, fmt.Errorf("invalid RATE_BURST: %w", err)
	}
	if cfg.LogLevel, err = zerolog.ParseLevel(getenv("LOG_LEVEL", "info")); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// UsesDevSecret reports whether the built-in development signing key is active.
func (c *Config) UsesDevSecret() bool {
	return c.JWTSecret == devJWTSecret
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
