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

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "job-match")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
}

func TestLoad_FromEnv(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_POOL_MAX_CONNS", "12")
	t.Setenv("SEARCH_CACHE_TTL", "2m")
	t.Setenv("TRACKER_STRICT_TRANSITIONS", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "job-match", cfg.App.AppName)
	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, "5432", cfg.Database.DBPort)
	assert.Equal(t, int32(12), cfg.Database.PoolMaxConns)
	assert.Equal(t, 2*time.Minute, cfg.Redis.CacheTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.True(t, cfg.Tracker.StrictTransitions)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiresIn)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "")

	_, err := Load("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "APP_NAME")
	assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")
	assert.NotContains(t, err.Error(), "HTTP_PORT")
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	setRequired(t)
	t.Setenv("LOG_LEVEL", "debug")

	path := filepath.Join(t.TempDir(), "jobmatch.yaml")
	body := []byte("log:\n  level: warn\n  format: console\ncatalog:\n  csv_path: /data/jobs.csv\n")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "/data/jobs.csv", cfg.Catalog.CSVPath)
}

func TestLoad_BadFile(t *testing.T) {
	setRequired(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
