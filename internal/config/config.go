package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// DefaultRecentLimit caps how many work orders a list load pulls from the store.
// Configured values above it are lowered to it.
const DefaultRecentLimit = 500

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Session  SessionConfig
	List     ListConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path       string
	Migrations string
}

// SessionConfig names the user the TUI runs as.
type SessionConfig struct {
	Login string
}

// ListConfig holds list screen settings.
type ListConfig struct {
	RecentLimit int `mapstructure:"recent_limit"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat     string `mapstructure:"date_format"`
	EditorTemplate string `mapstructure:"editor_template"`
}

// Load reads configuration from file and env. Env var overrides use prefix ORDENS_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", "~/.local/share/ordens/ordens.db")
	v.SetDefault("database.migrations", "internal/database/migrations")
	v.SetDefault("session.login", os.Getenv("USER"))
	v.SetDefault("list.recent_limit", DefaultRecentLimit)
	v.SetDefault("ui.date_format", "02/01/2006")
	v.SetDefault("ui.editor_template", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("ORDENS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "ordens"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ORDENS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.expandPaths(); err != nil {
		return Config{}, err
	}
	if c.List.RecentLimit <= 0 || c.List.RecentLimit > DefaultRecentLimit {
		c.List.RecentLimit = DefaultRecentLimit
	}
	return c, nil
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Database.Path, &c.Database.Migrations, &c.UI.EditorTemplate} {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("expand %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("ORDENS_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "ordens", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.migrations", cfg.Database.Migrations)
	v.Set("session.login", cfg.Session.Login)
	v.Set("list.recent_limit", cfg.List.RecentLimit)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.editor_template", cfg.UI.EditorTemplate)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
