package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "menulens.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv(EnvServerURL, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	t.Setenv(EnvServerURL, "")
	t.Setenv(EnvLogLevel, "")

	path := writeConfig(t, `
server_url: http://10.0.0.5:8000
timeout: 15s
storage_dir: /tmp/menus
jpeg_quality: 75
render_width: 400
log_level: debug
backend:
  addr: 127.0.0.1:9000
  language: eng
  glossary: glossary.yaml
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:8000", cfg.ServerURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, "/tmp/menus", cfg.StorageDir)
	assert.Equal(t, 75, cfg.JPEGQuality)
	assert.Equal(t, 400, cfg.RenderWidth)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, Backend{Addr: "127.0.0.1:9000", Language: "eng", Glossary: "glossary.yaml"}, cfg.Backend)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvServerURL, "http://192.168.1.20:8000")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load(writeConfig(t, "server_url: http://10.0.0.5:8000\n"))
	require.NoError(t, err)
	assert.Equal(t, "http://192.168.1.20:8000", cfg.ServerURL)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server_url: [unterminated\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "unknown_key: 1\n"))
	assert.Error(t, err, "unknown keys are rejected")
}

func TestValidate_Clamps(t *testing.T) {
	cfg := Config{Timeout: -time.Second, JPEGQuality: 150, RenderWidth: -1}
	cfg.Validate()

	d := Default()
	assert.Equal(t, d.ServerURL, cfg.ServerURL)
	assert.Equal(t, d.Timeout, cfg.Timeout)
	assert.Equal(t, d.JPEGQuality, cfg.JPEGQuality)
	assert.Equal(t, d.RenderWidth, cfg.RenderWidth)
	assert.Equal(t, d.StorageDir, cfg.StorageDir)
	assert.Equal(t, d.Backend, cfg.Backend)
}
