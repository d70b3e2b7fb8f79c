package model

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	want := DefaultAppConfig()
	assert.Equal(t, want.Random.DebounceMS, cfg.Random.DebounceMS)
	assert.Equal(t, want.Log.Level, cfg.Log.Level)
	assert.Equal(t, want.Database.Path, cfg.Database.Path)
	assert.Equal(t, 2*time.Second, cfg.Random.Debounce())
}

func TestLoadConfig_ReadsFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  path: /tmp/shelf.db
log:
  level: debug
random:
  debounce_ms: 500
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/shelf.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 500, cfg.Random.DebounceMS)
	// Unset keys keep their defaults.
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, float64(200), cfg.Shake.Threshold)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644))
	t.Setenv("MEDIASHELF_LOG_LEVEL", "error")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadConfig_ExpandsHomeInPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "database:\n  path: ~/shelf/catalog.db\nlog:\n  file: /var/log/shelf.log\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	home, err := homedir.Dir()
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "shelf", "catalog.db"), cfg.Database.Path)
	assert.Equal(t, "/var/log/shelf.log", cfg.Log.File)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [unterminated"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultAppConfig()
	cfg.Database.Path = "/data/catalog.db"
	cfg.Random.DebounceMS = 1500
	cfg.Display.Theme = "dark"

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/catalog.db", loaded.Database.Path)
	assert.Equal(t, 1500, loaded.Random.DebounceMS)
	assert.Equal(t, "dark", loaded.Display.Theme)
}
