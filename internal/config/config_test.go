package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PULSE_CONFIG", "")
	t.Setenv("SELECTION_ENABLED", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Selection.Enabled)
	assert.Equal(t, 100, cfg.Selection.MaxPadIterations)
	assert.Equal(t, "8080", cfg.HTTP.Port)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pulse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
mongo:
  database: pulse_test
selection:
  enabled: false
  max_pad_iterations: 20
  recent_window: 72h
http:
  port: "9000"
`), 0o600))

	t.Setenv("PULSE_CONFIG", path)
	t.Setenv("PORT", "9100")
	t.Setenv("REDIS_URI", "redis://cache:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "pulse_test", cfg.Mongo.Database)
	assert.False(t, cfg.Selection.Enabled)
	assert.Equal(t, 20, cfg.Selection.MaxPadIterations)
	assert.Equal(t, 72*time.Hour, cfg.Selection.RecentWindow)
	assert.Equal(t, "9100", cfg.HTTP.Port, "env wins over file")
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
	assert.Equal(t, "admin", cfg.Auth.AdminUsername, "unset keys keep defaults")
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("PULSE_CONFIG", "")
	t.Setenv("SELECTION_ENABLED", "maybe")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SELECTION_ENABLED")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("PULSE_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	require.Error(t, err)
}
