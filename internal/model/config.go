package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// DatabaseConfig holds the location of the local catalog database.
type DatabaseConfig struct {
	// Path is the SQLite file path. ":memory:" opens a throwaway database.
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`

	// File receives log output while the terminal UI owns stdout.
	File string `mapstructure:"file" yaml:"file"`
}

// RandomConfig tunes the random-pick flow.
type RandomConfig struct {
	// DebounceMS is the minimum gap between accepted picks, in milliseconds.
	DebounceMS int `mapstructure:"debounce_ms" yaml:"debounce_ms"`
}

// Debounce returns DebounceMS as a duration.
func (r RandomConfig) Debounce() time.Duration {
	return time.Duration(r.DebounceMS) * time.Millisecond
}

// ShakeConfig tunes the shake detector that triggers random picks.
type ShakeConfig struct {
	Threshold float64 `mapstructure:"threshold" yaml:"threshold"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Random   RandomConfig   `mapstructure:"random" yaml:"random"`
	Shake    ShakeConfig    `mapstructure:"shake" yaml:"shake"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
}

// configDir returns ~/.config/mediashelf, falling back to the working directory.
func configDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "mediashelf")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/mediashelf/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{
			Path: filepath.Join(configDir(), "mediashelf.db"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(configDir(), "mediashelf.log"),
		},
		Random: RandomConfig{
			DebounceMS: 2000,
		},
		Shake: ShakeConfig{
			Threshold: 200,
		},
		Display: DisplayConfig{
			Theme: "default",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// MEDIASHELF_* environment variables override file values
// (e.g. MEDIASHELF_DATABASE_PATH). If the file does not exist, defaults
// plus environment overrides are returned. A leading ~ in file paths
// expands to the home directory.
func LoadConfig(path string) (*AppConfig, error) {
	defaults := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("MEDIASHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("database.path", defaults.Database.Path)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("random.debounce_ms", defaults.Random.DebounceMS)
	v.SetDefault("shake.threshold", defaults.Shake.Threshold)
	v.SetDefault("display.theme", defaults.Display.Theme)

	if err := v.ReadInConfig(); err != nil {
		_, isPathErr := err.(*os.PathError)
		_, isNotFound := err.(viper.ConfigFileNotFoundError)
		if !isPathErr && !isNotFound {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	for _, p := range []*string{&cfg.Database.Path, &cfg.Log.File} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return nil, fmt.Errorf("expanding path %s: %w", *p, err)
		}
		*p = expanded
	}

	if cfg.Random.DebounceMS < 0 {
		cfg.Random.DebounceMS = 0
	}
	if cfg.Shake.Threshold <= 0 {
		cfg.Shake.Threshold = defaults.Shake.Threshold
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database", cfg.Database)
	v.Set("log", cfg.Log)
	v.Set("random", cfg.Random)
	v.Set("shake", cfg.Shake)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
