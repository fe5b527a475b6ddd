package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	Critique CritiqueConfig `mapstructure:"critique"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

// StorageConfig selects where the artwork collection is kept.
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // sqlite or file
	Path    string `mapstructure:"path"`
	SlotKey string `mapstructure:"slot_key"`
}

// CritiqueConfig holds provider settings for the AI critique.
type CritiqueConfig struct {
	Provider          string        `mapstructure:"provider"`
	APIKeyEnv         string        `mapstructure:"api_key_env"`
	APIKey            string        `mapstructure:"api_key"`
	Model             string        `mapstructure:"model"`
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	MaxImageBytes     int64         `mapstructure:"max_image_bytes"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string        `mapstructure:"currency_symbol"`
	LoadDelay      time.Duration `mapstructure:"load_delay"`
}

// LogConfig controls the log file. The terminal belongs to the UI.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Path   string `mapstructure:"path"`
	Pretty bool   `mapstructure:"pretty"`
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "artgallery")
}

func configPath() string {
	if p := os.Getenv("ARTGALLERY_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "artgallery", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.slot_key", "artworks")
	v.SetDefault("critique.provider", "openai")
	v.SetDefault("critique.api_key_env", "OPENAI_API_KEY")
	v.SetDefault("critique.api_key", "")
	v.SetDefault("critique.model", "gpt-4o-mini")
	v.SetDefault("critique.base_url", "")
	v.SetDefault("critique.timeout", "30s")
	v.SetDefault("critique.requests_per_minute", 20)
	v.SetDefault("critique.max_image_bytes", 10<<20)
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.load_delay", "1s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", filepath.Join(dataDir(), "artgallery.log"))
	v.SetDefault("log.pretty", false)
}

// Load reads configuration from file and env. Env var overrides use prefix ARTGALLERY_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if p := os.Getenv("ARTGALLERY_CONFIG"); p != "" {
		v.SetConfigFile(p)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "artgallery"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ARTGALLERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, missing := err.(viper.ConfigFileNotFoundError); !missing && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend != "sqlite" && c.Storage.Backend != "file" {
		return Config{}, fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend)
	}
	// the file backend picks its own default location
	if c.Storage.Path == "" && c.Storage.Backend == "sqlite" {
		c.Storage.Path = filepath.Join(dataDir(), "artgallery.db")
	}
	return c, nil
}

// WriteDefaults saves cfg as the config file on first run and reports whether
// it wrote one. An existing file is left alone. The API key is never written.
func WriteDefaults(cfg Config) (bool, error) {
	if _, err := os.Stat(configPath()); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config: %w", err)
	}
	cfg.Critique.APIKey = ""
	if err := Save(cfg); err != nil {
		return false, err
	}
	return true, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
// The API key is written too; prefer the environment variable or the key store.
func Save(cfg Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("storage.backend", cfg.Storage.Backend)
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("storage.slot_key", cfg.Storage.SlotKey)
	v.Set("critique.provider", cfg.Critique.Provider)
	v.Set("critique.api_key_env", cfg.Critique.APIKeyEnv)
	v.Set("critique.api_key", cfg.Critique.APIKey)
	v.Set("critique.model", cfg.Critique.Model)
	v.Set("critique.base_url", cfg.Critique.BaseURL)
	v.Set("critique.timeout", cfg.Critique.Timeout.String())
	v.Set("critique.requests_per_minute", cfg.Critique.RequestsPerMinute)
	v.Set("critique.max_image_bytes", cfg.Critique.MaxImageBytes)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.load_delay", cfg.UI.LoadDelay.String())
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.pretty", cfg.Log.Pretty)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
