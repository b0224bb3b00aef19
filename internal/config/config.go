// Package config loads bmo settings from config.yaml and BMO_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration structure.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Feed     FeedConfig     `mapstructure:"feed"`
	UI       UIConfig       `mapstructure:"ui"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// FeedConfig points at the alert feed file. Watch re-imports it on change;
// Schedule is a cron spec for periodic re-imports, empty to disable.
type FeedConfig struct {
	Path     string `mapstructure:"path"`
	Watch    bool   `mapstructure:"watch"`
	Schedule string `mapstructure:"schedule"`
}

type UIConfig struct {
	SidebarWidth int    `mapstructure:"sidebar_width"`
	DateFormat   string `mapstructure:"date_format"`
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Dir returns ~/.config/bmo, falling back to the temp dir without a home.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".config", "bmo")
}

// Load reads configFile when given, otherwise config.yaml from Dir() and
// the working directory. A missing config file is not an error.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("BMO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Database.Path = expandHome(cfg.Database.Path)
	cfg.Log.Path = expandHome(cfg.Log.Path)
	cfg.Feed.Path = expandHome(cfg.Feed.Path)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the rest of the program cannot work with.
func Validate(cfg *Config) error {
	if cfg.Database.Path == "" {
		return fmt.Errorf("database.path cannot be empty")
	}
	if !slices.Contains(validLogLevels, cfg.Log.Level) {
		return fmt.Errorf("log.level must be one of: %v, got %q", validLogLevels, cfg.Log.Level)
	}
	if cfg.UI.SidebarWidth < 1 {
		return fmt.Errorf("ui.sidebar_width must be >= 1, got %d", cfg.UI.SidebarWidth)
	}
	if cfg.Feed.Watch && cfg.Feed.Path == "" {
		return fmt.Errorf("feed.watch requires feed.path")
	}
	if cfg.Feed.Schedule != "" && cfg.Feed.Path == "" {
		return fmt.Errorf("feed.schedule requires feed.path")
	}
	return nil
}

func applyDefaults(v *viper.Viper) {
	dir := Dir()
	v.SetDefault("database.path", filepath.Join(dir, "bmo.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", filepath.Join(dir, "bmo.log"))
	v.SetDefault("feed.path", "")
	v.SetDefault("feed.watch", false)
	v.SetDefault("feed.schedule", "")
	v.SetDefault("ui.sidebar_width", 30)
	v.SetDefault("ui.date_format", "02/01/2006 15:04")
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
