package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with no keyring and no
// kanban variables set.
func isolate(t *testing.T) {
	t.Helper()

	t.Chdir(t.TempDir())
	for _, key := range []string{
		"PORT", "STORAGE_DRIVER", "DATABASE_URL", "SQLITE_PATH", "REDIS_URL", "CACHE_PREFIX",
		"CACHE_TTL", "HISTORY_LIMIT", "AI_BASE_URL", "AI_MODEL", "AI_API_KEY", "GROQ_API_KEY",
		"LOG_LEVEL", "LOG_FORMAT", "CORS_ORIGINS",
	} {
		if old, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, old) })
		}
	}

	prev := keyringLookup
	keyringLookup = func() (string, error) { return "", errors.New("no keyring") }
	t.Cleanup(func() { keyringLookup = prev })
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "./data/kanban.db", cfg.SQLitePath)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 50, cfg.HistoryLimit)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.AIBaseURL)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.AIModel)
	assert.Empty(t, cfg.AIAPIKey)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoad_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/kanban")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("HISTORY_LIMIT", "10")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://kanban.example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, []string{"http://localhost:3000", "https://kanban.example.com"}, cfg.CORSOrigins)
}

func TestLoad_YAMLFileAndEnvOverride(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(DefaultFile, []byte("port: \"7000\"\nlog_format: json\nhistory_limit: 20\n"), 0o644))
	t.Setenv("HISTORY_LIMIT", "30")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 30, cfg.HistoryLimit)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_AIKeyFallbacks(t *testing.T) {
	t.Run("AI_API_KEY wins", func(t *testing.T) {
		isolate(t)
		t.Setenv("AI_API_KEY", "primary")
		t.Setenv("GROQ_API_KEY", "groq")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "primary", cfg.AIAPIKey)
	})

	t.Run("GROQ_API_KEY", func(t *testing.T) {
		isolate(t)
		t.Setenv("GROQ_API_KEY", "groq")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "groq", cfg.AIAPIKey)
	})

	t.Run("keyring", func(t *testing.T) {
		isolate(t)
		keyringLookup = func() (string, error) { return "from-keyring", nil }

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "from-keyring", cfg.AIAPIKey)
	})
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{Port: "8080", StorageDriver: DriverSQLite, SQLitePath: "x.db", HistoryLimit: 50}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unknown driver", func(c *Config) { c.StorageDriver = "mysql" }, true},
		{"postgres without url", func(c *Config) { c.StorageDriver = DriverPostgres }, true},
		{"postgres with url", func(c *Config) { c.StorageDriver = DriverPostgres; c.DatabaseURL = "postgres://x" }, false},
		{"sqlite without path", func(c *Config) { c.SQLitePath = "" }, true},
		{"no port", func(c *Config) { c.Port = "" }, true},
		{"history too small", func(c *Config) { c.HistoryLimit = 1 }, true},
		{"negative ttl", func(c *Config) { c.CacheTTL = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
