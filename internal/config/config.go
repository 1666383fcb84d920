package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Store backends selectable via TRACKER_STORE.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Store    string // memory or postgres
	Database DatabaseConfig
	Redis    RedisConfig
	Server   ServerConfig
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string //nolint:gosec // G117: DB connection config
	DBName   string
	SSLMode  string
	MaxConns int
}

// RedisConfig holds Redis connection settings. An empty Addr disables the
// task event publisher.
type RedisConfig struct {
	Addr     string
	Password string //nolint:gosec // G117: Redis connection config
	DB       int
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr               string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSOrigins        []string
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// Load reads configuration from environment variables.
// Defaults are safe for local development only: the in-memory store and a
// disabled event publisher need no external services.
func Load() (*Config, error) {
	dbPort, err := getEnvInt("TRACKER_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	dbMaxConns, err := getEnvInt("TRACKER_DB_MAX_CONNS", 25)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	redisDB, err := getEnvInt("TRACKER_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	readTimeout, err := getEnvDuration("TRACKER_SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("TRACKER_SERVER_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	rateLimit, err := getEnvFloat("TRACKER_SERVER_RATE_LIMIT", 100)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	rateBurst, err := getEnvInt("TRACKER_SERVER_RATE_BURST", 200)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	corsOrigins := getEnvList("TRACKER_CORS_ORIGINS", []string{"http://localhost:5173"})

	cfg := &Config{
		Store: getEnv("TRACKER_STORE", StoreMemory),
		Database: DatabaseConfig{
			Host:     getEnv("TRACKER_DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("TRACKER_DB_USER", "tracker"),
			Password: getEnv("TRACKER_DB_PASSWORD", ""),
			DBName:   getEnv("TRACKER_DB_NAME", "tracker_dev"),
			SSLMode:  getEnv("TRACKER_DB_SSLMODE", "disable"),
			MaxConns: dbMaxConns,
		},
		Redis: RedisConfig{
			Addr:     getEnv("TRACKER_REDIS_ADDR", ""),
			Password: getEnv("TRACKER_REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Server: ServerConfig{
			Addr:               getEnv("TRACKER_SERVER_ADDR", ":8080"),
			ReadTimeout:        readTimeout,
			WriteTimeout:       writeTimeout,
			CORSOrigins:        corsOrigins,
			RateLimitPerSecond: rateLimit,
			RateLimitBurst:     rateBurst,
		},
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	if c.Store != StoreMemory && c.Store != StorePostgres {
		return fmt.Errorf("TRACKER_STORE must be %q or %q, got %q", StoreMemory, StorePostgres, c.Store)
	}

	if c.Store == StoreMemory {
		log.Warn().Msg("TRACKER_STORE=memory keeps tasks in process memory only; set to 'postgres' for durability")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("TRACKER_DB_PORT must be 1-65535, got %d", c.Database.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("TRACKER_DB_MAX_CONNS must be >= 1, got %d", c.Database.MaxConns)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("TRACKER_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("TRACKER_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.Server.RateLimitPerSecond <= 0 {
		return fmt.Errorf("TRACKER_SERVER_RATE_LIMIT must be positive, got %g", c.Server.RateLimitPerSecond)
	}
	if c.Server.RateLimitBurst < 1 {
		return fmt.Errorf("TRACKER_SERVER_RATE_BURST must be >= 1, got %d", c.Server.RateLimitBurst)
	}

	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as float: %w", key, v, err)
	}
	return f, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
