package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "skillswap")
	t.Setenv("APP_ENV", "development")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://localhost/skillswap")
	t.Setenv("SESSION_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "skillswap", cfg.Database.MongoDatabase)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Session.CookieSecure)
	assert.Equal(t, 600*time.Second, cfg.Redis.TTL)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.True(t, cfg.App.IsDevelopment())
}

func TestLoad_MissingRequired(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("HTTP_PORT", "")
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "HTTP_PORT")
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoad_MemoryDriverNeedsNoURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
}

func TestLoad_InvalidValues(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SESSION_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errInvalidEnv))
	assert.Contains(t, err.Error(), "STORE_DRIVER")
	assert.Contains(t, err.Error(), "SESSION_TTL")
}

func TestLoad_PoolSizeOutOfRange(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_POOL_MAX_CONNS", "4294967297")
	t.Setenv("DB_POOL_MIN_CONNS", "2")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errInvalidEnv))
	assert.Contains(t, err.Error(), "DB_POOL_MAX_CONNS")
	assert.NotContains(t, err.Error(), "DB_POOL_MIN_CONNS")
}

func TestLoad_PoolSizes(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_POOL_MAX_CONNS", "20")
	t.Setenv("DB_POOL_MIN_CONNS", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int32(20), cfg.Database.PoolMaxConns)
	assert.Equal(t, int32(2), cfg.Database.PoolMinConns)
}
