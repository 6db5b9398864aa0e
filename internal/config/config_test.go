package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/bookmarks")
	t.Setenv("JWT_SECRET", "super-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "bookmarks-backend", cfg.JWTIssuer)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, ":8080", cfg.HTTPAddress())
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "3333")
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3333", cfg.HTTPAddress())
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing database url", env: map[string]string{"DATABASE_URL": "", "JWT_SECRET": "s"}},
		{name: "missing secret", env: map[string]string{"DATABASE_URL": "db", "JWT_SECRET": ""}},
		{name: "blank secret", env: map[string]string{"DATABASE_URL": "db", "JWT_SECRET": "   "}},
		{name: "bad driver", env: map[string]string{"DATABASE_URL": "db", "JWT_SECRET": "s", "STORAGE_DRIVER": "mysql"}},
		{name: "bad log level", env: map[string]string{"DATABASE_URL": "db", "JWT_SECRET": "s", "LOG_LEVEL": "loud"}},
		{name: "bad log format", env: map[string]string{"DATABASE_URL": "db", "JWT_SECRET": "s", "LOG_FORMAT": "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
