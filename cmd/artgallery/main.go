package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/digietal/artgallery/internal/config"
	"github.com/digietal/artgallery/internal/controller"
	"github.com/digietal/artgallery/internal/critique"
	"github.com/digietal/artgallery/internal/database"
	"github.com/digietal/artgallery/internal/database/repository"
	"github.com/digietal/artgallery/internal/logging"
	"github.com/digietal/artgallery/internal/prefs"
	"github.com/digietal/artgallery/internal/secrets"
	"github.com/digietal/artgallery/internal/store"
	"github.com/digietal/artgallery/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "artgallery: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logFile, err := logging.Setup(cfg.Log)
	if err != nil {
		return err
	}
	defer logFile.Close()

	if wrote, err := config.WriteDefaults(cfg); err != nil {
		zlog.Warn().Err(err).Msg("write default config")
	} else if wrote {
		zlog.Info().Msg("wrote default config")
	}

	if len(args) > 0 {
		switch args[0] {
		case "key":
			return runKeyCommand(cfg, args, os.Stdin)
		case "reset":
			return resetCommand(context.Background(), cfg.Storage)
		default:
			return fmt.Errorf("usage: artgallery [key set|key delete|reset]")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slot, closeSlot, err := openSlot(cfg.Storage)
	if err != nil {
		return err
	}
	defer closeSlot()

	artworks := store.New(slot)
	ctl := controller.New(artworks, controller.LogSink{})
	critic := critique.NewService(critiqueProvider(cfg.Critique), critique.Options{
		Timeout:           cfg.Critique.Timeout,
		RequestsPerMinute: cfg.Critique.RequestsPerMinute,
		MaxImageBytes:     cfg.Critique.MaxImageBytes,
	})
	zlog.Info().
		Str("backend", cfg.Storage.Backend).
		Str("critique_provider", cfg.Critique.Provider).
		Bool("critique_enabled", critic.Enabled()).
		Msg("starting")

	p := tea.NewProgram(tui.New(ctx, cfg, ctl, artworks, critic), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// openSlot returns the durable slot for the configured backend.
func openSlot(cfg config.StorageConfig) (store.Slot, func(), error) {
	switch cfg.Backend {
	case "file":
		path := cfg.Path
		if path == "" {
			var err error
			if path, err = prefs.DefaultPath(); err != nil {
				return nil, nil, fmt.Errorf("artworks file: %w", err)
			}
		}
		return &prefs.FileSlot{Path: path}, func() {}, nil
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("mkdir db dir: %w", err)
		}
		if err := database.RunMigrations(cfg.Path); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		db, err := database.Open(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open db: %w", err)
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				zlog.Warn().Err(err).Msg("close db")
			}
		}
		return repository.NewSlotRepo(db).Bind(cfg.SlotKey), closeDB, nil
	}
}

// clearer is a slot that can forget its value.
type clearer interface {
	Clear(ctx context.Context) error
}

// resetCommand empties the artwork slot so the next launch starts from the seed set.
func resetCommand(ctx context.Context, cfg config.StorageConfig) error {
	slot, closeSlot, err := openSlot(cfg)
	if err != nil {
		return err
	}
	defer closeSlot()
	c, ok := slot.(clearer)
	if !ok {
		return fmt.Errorf("storage backend %q cannot be reset", cfg.Backend)
	}
	if err := c.Clear(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	zlog.Info().Str("backend", cfg.Backend).Msg("artworks reset")
	return nil
}

// critiqueProvider builds the configured provider. A nil provider disables critiques.
func critiqueProvider(cfg config.CritiqueConfig) critique.Provider {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "openai":
		key := resolveAPIKey(cfg)
		if key == "" {
			zlog.Warn().Str("env", cfg.APIKeyEnv).Msg("no critique API key; critiques disabled")
			return nil
		}
		p := critique.NewOpenAIProvider(key, cfg.Model)
		if cfg.BaseURL != "" {
			p.SetBaseURL(cfg.BaseURL)
		}
		return p
	case "offline":
		return critique.NewOfflineProvider()
	case "", "none":
		return nil
	default:
		zlog.Warn().Str("provider", cfg.Provider).Msg("unknown critique provider; critiques disabled")
		return nil
	}
}

// resolveAPIKey prefers the environment, then the keyring, then the config file.
func resolveAPIKey(cfg config.CritiqueConfig) string {
	env := strings.TrimSpace(cfg.APIKeyEnv)
	if env == "" {
		env = "OPENAI_API_KEY"
	}
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	if ring, err := secrets.DefaultKeyring(); err == nil {
		if k, err := ring.Fetch(cfg.Provider); err == nil {
			return k
		} else if !errors.Is(err, secrets.ErrKeyNotFound) {
			zlog.Warn().Err(err).Msg("read keyring")
		}
	}
	return strings.TrimSpace(cfg.APIKey)
}

// runKeyCommand handles `artgallery key set|delete`, storing the critique
// provider key in the keyring. The key is read from stdin.
func runKeyCommand(cfg config.Config, args []string, stdin io.Reader) error {
	ring, err := secrets.DefaultKeyring()
	if err != nil {
		return err
	}
	return keyCommand(ring, cfg.Critique.Provider, args, stdin)
}

func keyCommand(ring secrets.Keyring, provider string, args []string, stdin io.Reader) error {
	if len(args) != 2 || args[0] != "key" {
		return fmt.Errorf("usage: artgallery [key set|key delete|reset]")
	}
	switch args[1] {
	case "set":
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read key: %w", err)
		}
		key := strings.TrimSpace(line)
		if key == "" {
			return fmt.Errorf("empty key")
		}
		return ring.Store(provider, key)
	case "delete":
		return ring.Delete(provider)
	default:
		return fmt.Errorf("unknown key command %q", args[1])
	}
}
