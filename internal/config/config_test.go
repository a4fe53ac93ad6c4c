package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 100, cfg.Bulk.MaxIDs)
	assert.Equal(t, 8, cfg.Bulk.Concurrency)
	assert.Equal(t, 10*time.Minute, cfg.Redis.StatsCacheTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_HOST", "db")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("BULK_MAX_IDS", "10")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Bulk.MaxIDs)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.CORSAllowedOrigins)
	assert.Equal(t, "postgres://postgres:pw@db:5432/stamp_requests?sslmode=disable", cfg.DatabaseURL())
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			App:  AppConfig{StorageDriver: StorageDriverMemory},
			JWT:  JWTConfig{Secret: "s"},
			Bulk: BulkConfig{MaxIDs: 100, Concurrency: 4},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown driver", func(c *Config) { c.App.StorageDriver = "sqlite" }},
		{"postgres without password", func(c *Config) { c.App.StorageDriver = StorageDriverPostgres }},
		{"missing secret", func(c *Config) { c.JWT.Secret = "" }},
		{"zero bulk limit", func(c *Config) { c.Bulk.MaxIDs = 0 }},
		{"zero concurrency", func(c *Config) { c.Bulk.Concurrency = 0 }},
		{"redis without addr", func(c *Config) { c.Redis.Enabled = true }},
	}

	base := valid()
	require.NoError(t, base.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
