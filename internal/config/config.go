// Package config resolves runtime settings from defaults, an optional config
// file, LAYOUT_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"css-layout-builder/internal/storage"
)

// EnvPrefix is prepended to every environment variable, e.g. LAYOUT_LISTEN.
const EnvPrefix = "LAYOUT"

type Config struct {
	Listen        string `mapstructure:"listen"`         // HTTP listen address for the web editor
	DataDir       string `mapstructure:"data_dir"`       // Root for saved layouts
	Store         string `mapstructure:"store"`          // json | sqlite
	StoreName     string `mapstructure:"store_name"`     // Collection name inside the backend
	TemplatesFile string `mapstructure:"templates_file"` // Optional YAML catalog replacing the built-in one
	HistoryLimit  int    `mapstructure:"history_limit"`  // Max undo steps, 0 = unbounded
	LogLevel      string `mapstructure:"log_level"`      // debug | info | warn | error
	ExportDir     string `mapstructure:"export_dir"`     // Default target for file exports
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Listen:       ":8080",
		DataDir:      "data",
		Store:        storage.BackendJSON,
		StoreName:    "css-generator-layouts",
		HistoryLimit: 0,
		LogLevel:     "info",
		ExportDir:    "export",
	}
}

// flag name -> config key
var flagKeys = map[string]string{
	"listen":         "listen",
	"data-dir":       "data_dir",
	"store":          "store",
	"store-name":     "store_name",
	"templates-file": "templates_file",
	"history-limit":  "history_limit",
	"log-level":      "log_level",
	"export-dir":     "export_dir",
}

// RegisterFlags adds the configuration flags (plus --config) to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("config", "", "path to a config file (yaml, toml or json)")
	fs.String("listen", d.Listen, "HTTP listen address")
	fs.String("data-dir", d.DataDir, "directory for saved layouts")
	fs.String("store", d.Store, "saved layout backend: json or sqlite")
	fs.String("store-name", d.StoreName, "name of the saved layout collection")
	fs.String("templates-file", d.TemplatesFile, "YAML template catalog to use instead of the built-in one")
	fs.Int("history-limit", d.HistoryLimit, "maximum undo steps kept (0 = unbounded)")
	fs.String("log-level", d.LogLevel, "log level: debug, info, warn or error")
	fs.String("export-dir", d.ExportDir, "default directory for exported files")
}

// Load resolves the configuration. fs may be nil; when it is not, it must
// have been set up with RegisterFlags and already parsed.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("listen", d.Listen)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("store", d.Store)
	v.SetDefault("store_name", d.StoreName)
	v.SetDefault("templates_file", d.TemplatesFile)
	v.SetDefault("history_limit", d.HistoryLimit)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("export_dir", d.ExportDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var configFile string
	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
		if f := fs.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("layout-builder")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks fields with a closed set of values.
func (c *Config) Validate() error {
	switch c.Store {
	case storage.BackendJSON, storage.BackendSQLite:
	default:
		return fmt.Errorf("config: store must be %q or %q, got %q", storage.BackendJSON, storage.BackendSQLite, c.Store)
	}
	if c.DataDir == "" {
		return fmt.Errorf("config: data_dir is required")
	}
	if c.StoreName == "" {
		return fmt.Errorf("config: store_name is required")
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("config: history_limit must not be negative")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps LogLevel to a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: invalid log_level %q", c.LogLevel)
	}
	return l, nil
}

// NewLogger returns a text logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
