// Package config loads server settings from .env, an optional YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "kanban.yaml"

type Config struct {
	Port          string
	StorageDriver string
	DatabaseURL   string
	SQLitePath    string

	RedisURL    string
	CachePrefix string
	CacheTTL    time.Duration

	HistoryLimit int

	AIBaseURL string
	AIModel   string
	AIAPIKey  string

	LogLevel    string
	LogFormat   string
	CORSOrigins []string
}

// keyringLookup is replaced in tests.
var keyringLookup = AIKeyFromKeyring

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("storage_driver", DriverSQLite)
	v.SetDefault("sqlite_path", "./data/kanban.db")
	v.SetDefault("cache_prefix", "kanban")
	v.SetDefault("cache_ttl", "5m")
	v.SetDefault("history_limit", 50)
	v.SetDefault("ai_base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("ai_model", "llama-3.3-70b-versatile")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("cors_origins", "*")
}

// Load reads .env, then path (or DefaultFile when path is empty and the file
// exists), then the environment. Environment variables win.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Port:          v.GetString("port"),
		StorageDriver: strings.ToLower(strings.TrimSpace(v.GetString("storage_driver"))),
		DatabaseURL:   v.GetString("database_url"),
		SQLitePath:    v.GetString("sqlite_path"),
		RedisURL:      v.GetString("redis_url"),
		CachePrefix:   v.GetString("cache_prefix"),
		CacheTTL:      v.GetDuration("cache_ttl"),
		HistoryLimit:  v.GetInt("history_limit"),
		AIBaseURL:     v.GetString("ai_base_url"),
		AIModel:       v.GetString("ai_model"),
		AIAPIKey:      v.GetString("ai_api_key"),
		LogLevel:      v.GetString("log_level"),
		LogFormat:     v.GetString("log_format"),
		CORSOrigins:   splitList(v.GetString("cors_origins")),
	}

	if cfg.AIAPIKey == "" {
		cfg.AIAPIKey = v.GetString("groq_api_key")
	}
	if cfg.AIAPIKey == "" {
		if key, err := keyringLookup(); err == nil {
			cfg.AIAPIKey = key
		} else {
			slog.Debug("no AI key in keyring", "error", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH must be set for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL must be set for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (want %s or %s)", c.StorageDriver, DriverSQLite, DriverPostgres)
	}

	if c.Port == "" {
		return errors.New("PORT must be set")
	}
	if c.HistoryLimit < 2 {
		return fmt.Errorf("HISTORY_LIMIT must be at least 2, got %d", c.HistoryLimit)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative, got %s", c.CacheTTL)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
