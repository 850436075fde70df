package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATA_BACKEND", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MOCK_LATENCY_MS", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("APP_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.DataBackend)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, 800*time.Millisecond, cfg.MockLatency)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, "http://localhost:5173", cfg.AppURL)
}

func TestLoadPostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATA_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.EqualError(t, err, "missing required env: DATABASE_URL")
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("MOCK_LATENCY_MS", "rapide")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("MOCK_LATENCY_MS", "")
	t.Setenv("DATA_BACKEND", "sqlite")
	_, err = Load()
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
	assert.Nil(t, splitList(""))
}
