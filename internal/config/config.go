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
	Database DatabaseConfig
	Autosave AutosaveConfig
	Snapshot SnapshotConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// AutosaveConfig tunes the dashboard snapshot auto-saver. Both values
// exist to keep keystroke-level changes from hammering the settings
// store; the exact numbers are a product choice.
type AutosaveConfig struct {
	EnableDelay time.Duration `mapstructure:"enable_delay"`
	MinInterval time.Duration `mapstructure:"min_interval"`
}

// SnapshotConfig controls restore behavior.
type SnapshotConfig struct {
	// MaxAge is how old a saved snapshot may be and still be restored.
	MaxAge time.Duration `mapstructure:"max_age"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	PageSizeDesktop int `mapstructure:"page_size_desktop"`
	PageSizePhone   int `mapstructure:"page_size_phone"`
}

// Load reads configuration from file and env. Env var overrides use prefix GLITTER_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "glitter", "glitter.db"))
	v.SetDefault("autosave.enable_delay", "1500ms")
	v.SetDefault("autosave.min_interval", "1s")
	v.SetDefault("snapshot.max_age", "24h")
	v.SetDefault("ui.page_size_desktop", 25)
	v.SetDefault("ui.page_size_phone", 10)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("GLITTER_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "glitter"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GLITTER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("GLITTER_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "glitter", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("autosave.enable_delay", cfg.Autosave.EnableDelay.String())
	v.Set("autosave.min_interval", cfg.Autosave.MinInterval.String())
	v.Set("snapshot.max_age", cfg.Snapshot.MaxAge.String())
	v.Set("ui.page_size_desktop", cfg.UI.PageSizeDesktop)
	v.Set("ui.page_size_phone", cfg.UI.PageSizePhone)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
