// Package logging configures the global zerolog logger. Output goes to a file
// because the terminal is owned by the UI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/digietal/artgallery/internal/config"
)

// Setup points the global logger at cfg.Path. The returned closer flushes the file.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Path == "" {
		zlog.Logger = zerolog.New(io.Discard)
		return io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	var w io.Writer = f
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: time.DateTime}
	}
	zlog.Logger = zerolog.New(w).With().Timestamp().Str("app", "artgallery").Logger()
	return f, nil
}
