package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/digietal/artgallery/internal/config"
	"github.com/digietal/artgallery/internal/critique"
	"github.com/digietal/artgallery/internal/gallery"
	"github.com/digietal/artgallery/internal/prefs"
	"github.com/digietal/artgallery/internal/secrets"
	"github.com/digietal/artgallery/internal/store"
)

func TestKeyCommandSetAndDelete(t *testing.T) {
	ring := secrets.Keyring{Dir: t.TempDir()}
	require.NoError(t, keyCommand(ring, "openai", []string{"key", "set"}, strings.NewReader("sk-abc\n")))
	got, err := ring.Fetch("openai")
	require.NoError(t, err)
	require.Equal(t, "sk-abc", got)

	require.NoError(t, keyCommand(ring, "openai", []string{"key", "delete"}, nil))
	_, err = ring.Fetch("openai")
	require.ErrorIs(t, err, secrets.ErrKeyNotFound)
}

func TestKeyCommandRejectsBadInput(t *testing.T) {
	ring := secrets.Keyring{Dir: t.TempDir()}
	require.Error(t, keyCommand(ring, "openai", []string{"key", "set"}, strings.NewReader("  \n")))
	require.Error(t, keyCommand(ring, "openai", []string{"serve"}, nil))
	require.Error(t, keyCommand(ring, "openai", []string{"key", "rotate"}, nil))
}

func TestResolveAPIKeyPrefersEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GALLERY_TEST_KEY", "from-env")
	cfg := config.CritiqueConfig{Provider: "openai", APIKeyEnv: "GALLERY_TEST_KEY", APIKey: "from-config"}
	require.Equal(t, "from-env", resolveAPIKey(cfg))

	t.Setenv("GALLERY_TEST_KEY", "")
	require.Equal(t, "from-config", resolveAPIKey(cfg))
}

func TestCritiqueProviderSelection(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GALLERY_TEST_KEY", "")

	require.Nil(t, critiqueProvider(config.CritiqueConfig{Provider: "none"}))
	require.Nil(t, critiqueProvider(config.CritiqueConfig{Provider: "openai", APIKeyEnv: "GALLERY_TEST_KEY"}))
	require.IsType(t, &critique.OfflineProvider{}, critiqueProvider(config.CritiqueConfig{Provider: "offline"}))

	t.Setenv("GALLERY_TEST_KEY", "sk-test")
	require.IsType(t, &critique.OpenAIProvider{}, critiqueProvider(config.CritiqueConfig{Provider: "openai", APIKeyEnv: "GALLERY_TEST_KEY"}))
}

func TestOpenSlotBackends(t *testing.T) {
	dir := t.TempDir()

	slot, closeSlot, err := openSlot(config.StorageConfig{Backend: "file", Path: dir + "/artworks.json"})
	require.NoError(t, err)
	closeSlot()
	require.IsType(t, &prefs.FileSlot{}, slot)

	slot, closeSlot, err = openSlot(config.StorageConfig{Backend: "sqlite", Path: dir + "/db/gallery.db", SlotKey: "artworks"})
	require.NoError(t, err)
	defer closeSlot()
	_, err = slot.Read(t.Context())
	require.Error(t, err)
}

func TestResetCommandReseedsOnNextLoad(t *testing.T) {
	dir := t.TempDir()
	for _, cfg := range []config.StorageConfig{
		{Backend: "file", Path: dir + "/artworks.json"},
		{Backend: "sqlite", Path: dir + "/gallery.db", SlotKey: "artworks"},
	} {
		slot, closeSlot, err := openSlot(cfg)
		require.NoError(t, err)
		s := store.New(slot)
		_, err = s.Load(t.Context())
		require.NoError(t, err)
		require.NoError(t, s.Remove(t.Context(), "1"))
		closeSlot()

		require.NoError(t, resetCommand(t.Context(), cfg), cfg.Backend)

		slot, closeSlot, err = openSlot(cfg)
		require.NoError(t, err)
		_, err = slot.Read(t.Context())
		require.ErrorIs(t, err, gallery.ErrSlotEmpty, cfg.Backend)
		list, err := store.New(slot).Load(t.Context())
		require.NoError(t, err)
		require.Len(t, list, 12, cfg.Backend)
		closeSlot()
	}
}
