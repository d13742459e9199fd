package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds process-wide settings. It is built once in main and passed down.
type Config struct {
	Addr            string
	DatabaseURL     string
	DBMaxOpenConns  int
	AutoMigrate     bool
	JWTSecret       string
	TokenTTL        time.Duration
	BcryptCost      int
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	LogLevel        string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// Load builds a Config from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:            getString("HTTP_ADDR", ":3000"),
		DatabaseURL:     getString("DATABASE_URL", ""),
		DBMaxOpenConns:  getInt("DB_MAX_OPEN_CONNS", 10),
		AutoMigrate:     getBool("AUTO_MIGRATE", true),
		JWTSecret:       getString("SECRET_KEY", ""),
		TokenTTL:        getDuration("TOKEN_TTL", time.Hour),
		BcryptCost:      getInt("BCRYPT_COST", 10),
		RedisAddr:       getString("REDIS_ADDR", ""),
		RedisPassword:   getString("REDIS_PASSWORD", ""),
		RedisDB:         getInt("REDIS_DB", 0),
		LogLevel:        getString("LOG_LEVEL", "info"),
		AllowedOrigins:  getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks required settings and value ranges.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("SECRET_KEY is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive: %s", c.TokenTTL)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31: %d", c.BcryptCost)
	}
	if c.DBMaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1: %d", c.DBMaxOpenConns)
	}
	return nil
}

func getString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
