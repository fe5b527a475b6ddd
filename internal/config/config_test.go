package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ARTGALLERY_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Storage.Backend)
	require.Equal(t, filepath.Join(home, ".local", "share", "artgallery", "artgallery.db"), cfg.Storage.Path)
	require.Equal(t, "artworks", cfg.Storage.SlotKey)
	require.Equal(t, "OPENAI_API_KEY", cfg.Critique.APIKeyEnv)
	require.Equal(t, 30*time.Second, cfg.Critique.Timeout)
	require.Equal(t, 20, cfg.Critique.RequestsPerMinute)
	require.Equal(t, "$", cfg.UI.CurrencySymbol)
	require.Equal(t, time.Second, cfg.UI.LoadDelay)
}

func TestLoadFileAndEnv(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "gallery.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[storage]
backend = "file"
path = "/tmp/artworks.json"

[critique]
provider = "offline"
timeout = "5s"

[ui]
currency_symbol = "₱"
`), 0o600))
	t.Setenv("ARTGALLERY_CONFIG", path)
	t.Setenv("ARTGALLERY_CRITIQUE_MODEL", "gpt-4o")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "file", cfg.Storage.Backend)
	require.Equal(t, "/tmp/artworks.json", cfg.Storage.Path)
	require.Equal(t, "offline", cfg.Critique.Provider)
	require.Equal(t, 5*time.Second, cfg.Critique.Timeout)
	require.Equal(t, "gpt-4o", cfg.Critique.Model)
	require.Equal(t, "₱", cfg.UI.CurrencySymbol)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	isolate(t)
	t.Setenv("ARTGALLERY_STORAGE_BACKEND", "postgres")
	_, err := Load()
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	home := isolate(t)
	cfg, err := Load()
	require.NoError(t, err)
	cfg.Critique.Provider = "offline"
	cfg.UI.LoadDelay = 0
	require.NoError(t, Save(cfg))

	_, err = os.Stat(filepath.Join(home, ".config", "artgallery", "config.toml"))
	require.NoError(t, err)

	again, err := Load()
	require.NoError(t, err)
	require.Equal(t, "offline", again.Critique.Provider)
	require.Equal(t, time.Duration(0), again.UI.LoadDelay)
	require.Equal(t, cfg.Storage, again.Storage)
}

func TestWriteDefaultsOnlyOnFirstRun(t *testing.T) {
	home := isolate(t)
	t.Setenv("ARTGALLERY_CRITIQUE_API_KEY", "sk-secret")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sk-secret", cfg.Critique.APIKey)

	wrote, err := WriteDefaults(cfg)
	require.NoError(t, err)
	require.True(t, wrote)

	path := filepath.Join(home, ".config", "artgallery", "config.toml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "currency_symbol")
	require.NotContains(t, string(data), "sk-secret")

	cfg.UI.CurrencySymbol = "€"
	wrote, err = WriteDefaults(cfg)
	require.NoError(t, err)
	require.False(t, wrote)
	again, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, data, again)
}
