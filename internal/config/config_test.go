package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  host: "0.0.0.0"

database:
  url: "postgres://localhost/roster?sslmode=disable"

fetch:
  timeout_seconds: 10
  max_response_mb: 5

reconcile:
  dob_mode: "dmy"
  max_suggestions: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "postgres://localhost/roster?sslmode=disable", cfg.Database.URL)
	assert.Equal(t, 10, cfg.Fetch.TimeoutSeconds)
	assert.Equal(t, 5, cfg.Fetch.MaxResponseMB)
	assert.Equal(t, "dmy", cfg.Reconcile.DOBMode)
	assert.Equal(t, 5, cfg.Reconcile.MaxSuggestions)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "server: {}\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 30, cfg.Fetch.TimeoutSeconds)
	assert.Equal(t, 20, cfg.Fetch.MaxResponseMB)
	assert.Equal(t, "auto", cfg.Reconcile.DOBMode)
	assert.Equal(t, 3, cfg.Reconcile.MaxSuggestions)
}

func TestLoad_InvalidDOBMode(t *testing.T) {
	path := writeConfig(t, "reconcile:\n  dob_mode: \"ymd\"\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dob_mode")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("SERVER_HOST", "example.internal")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("DATABASE_URL", "postgres://db/roster")
	t.Setenv("RECONCILE_DOB_MODE", "mdy")

	cfg, err := LoadFromEnv(path)
	require.NoError(t, err)

	assert.Equal(t, "example.internal", cfg.Server.Host)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "postgres://db/roster", cfg.Database.URL)
	assert.Equal(t, "mdy", cfg.Reconcile.DOBMode)
}

func TestLoadFromEnv_BadPort(t *testing.T) {
	path := writeConfig(t, "server: {}\n")
	t.Setenv("SERVER_PORT", "not-a-port")

	_, err := LoadFromEnv(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_PORT")
}
