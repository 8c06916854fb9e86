package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	for _, k := range []string{
		"DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"REDIS_ADDR", "JWT_SECRET", "PORT", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}

	cfg := New()
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "8080", cfg.Port)
	assert.Contains(t, cfg.DB.DSN, "dbname=roadmate")
	assert.Contains(t, cfg.DB.DSN, "host=localhost")
	assert.Equal(t, 1, cfg.JWT.AccessTTLHours)
}

func TestNewPrefersDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/roadmate")
	t.Setenv("DB_HOST", "ignored")

	cfg := New()
	assert.Equal(t, "postgres://app:secret@db:5432/roadmate", cfg.DB.DSN)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "roadmate_test")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_ACCESS_TTL_HOURS", "48")
	t.Setenv("JWT_REFRESH_TTL_HOURS", "not-a-number")

	cfg := New()
	assert.Contains(t, cfg.DB.DSN, "host=db.internal")
	assert.Contains(t, cfg.DB.DSN, "dbname=roadmate_test")
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 48, cfg.JWT.AccessTTLHours)
	// Unparseable ints fall back to the default.
	assert.Equal(t, 24*7, cfg.JWT.RefreshTTLHours)
}

func TestGetEnvDefaultTrimsWhitespace(t *testing.T) {
	t.Setenv("SOME_KEY", "   ")
	assert.Equal(t, "fallback", getEnvDefault("SOME_KEY", "fallback"))

	t.Setenv("SOME_KEY", " value ")
	assert.Equal(t, "value", getEnvDefault("SOME_KEY", "fallback"))
}
