package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for extension-portal
type Config struct {
	Server   ServerConfig
	Fixtures FixturesConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Portal   PortalConfig
	Refresh  RefreshConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string
	Port           int
	RequestTimeout time.Duration
	AllowedOrigins []string
}

// FixturesConfig holds the YAML dataset location
type FixturesConfig struct {
	Dir string // Empty means the dataset compiled into the binary
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	DSN           string // Empty disables the database
	MigrationsDir string // Empty means the embedded migrations
	MaxOpenConns  int
	MaxIdleConns  int
	AutoMigrate   bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Address  string // Empty selects the in-memory cache
	Password string
	DB       int
	TTL      time.Duration
	Prefix   string
}

// PortalConfig holds portal behavior settings
type PortalConfig struct {
	StudentID       string // Viewer when a request does not identify one
	EnforceCapacity bool   // Reject submissions to full projects
}

// RefreshConfig holds dataset reload settings
type RefreshConfig struct {
	Interval time.Duration // Zero disables periodic reloads
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// Enabled reports whether a database is configured
func (d DatabaseConfig) Enabled() bool {
	return d.DSN != ""
}

// Enabled reports whether Redis is configured
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			RequestTimeout: getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 30*time.Second),
			AllowedOrigins: getEnvAsSlice("SERVER_ALLOWED_ORIGINS", []string{"*"}),
		},
		Fixtures: FixturesConfig{
			Dir: getEnv("FIXTURES_DIR", ""),
		},
		Database: DatabaseConfig{
			DSN:           getEnv("DATABASE_DSN", ""),
			MigrationsDir: getEnv("DATABASE_MIGRATIONS_DIR", ""),
			MaxOpenConns:  getEnvAsInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:  getEnvAsInt("DATABASE_MAX_IDLE_CONNS", 2),
			AutoMigrate:   getEnvAsBool("DATABASE_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      getEnvAsDuration("REDIS_TTL", 5*time.Minute),
			Prefix:   getEnv("REDIS_PREFIX", "portal:"),
		},
		Portal: PortalConfig{
			StudentID:       getEnv("PORTAL_STUDENT_ID", "1"),
			EnforceCapacity: getEnvAsBool("PORTAL_ENFORCE_CAPACITY", false),
		},
		Refresh: RefreshConfig{
			Interval: getEnvAsDuration("REFRESH_INTERVAL", 0),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive: %s", c.Server.RequestTimeout)
	}

	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("invalid max open connections: %d", c.Database.MaxOpenConns)
	}

	if c.Database.MaxIdleConns < 0 || c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("max idle connections must be between 0 and %d: %d",
			c.Database.MaxOpenConns, c.Database.MaxIdleConns)
	}

	if c.Redis.TTL < 0 {
		return fmt.Errorf("redis TTL must not be negative: %s", c.Redis.TTL)
	}

	if c.Redis.Enabled() {
		if strings.TrimSpace(c.Redis.Prefix) == "" {
			return fmt.Errorf("redis prefix must not be empty")
		}
		if c.Redis.TTL == 0 {
			return fmt.Errorf("redis TTL must be positive when redis is enabled")
		}
	}

	if c.Refresh.Interval < 0 {
		return fmt.Errorf("refresh interval must not be negative: %s", c.Refresh.Interval)
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}

// ParseLevel converts a LOG_LEVEL value into a slog level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level: %q", level)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
