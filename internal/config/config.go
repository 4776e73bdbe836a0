// Package config loads pickr settings with viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Search modes accepted by the search key.
const (
	SearchSubstring = "substring"
	SearchFuzzy     = "fuzzy"
)

// Labels used when nothing is configured.
const (
	DefaultFooter      = "Can't find your item?"
	DefaultPlaceholder = "Search items"
)

// Config holds all configuration values for pickr.
type Config struct {
	Search      string `mapstructure:"search" yaml:"search"`
	Footer      string `mapstructure:"footer" yaml:"footer"`
	Placeholder string `mapstructure:"placeholder" yaml:"placeholder"`
	Height      int    `mapstructure:"height" yaml:"height"`
	DataDir     string `mapstructure:"data_dir" yaml:"data_dir"`
	Record      bool   `mapstructure:"record" yaml:"record"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	ItemsPath   string `mapstructure:"items_path" yaml:"items_path"`
}

var defaults = map[string]any{
	"search":      SearchSubstring,
	"footer":      DefaultFooter,
	"placeholder": DefaultPlaceholder,
	"height":      8,
	"data_dir":    ".pickr",
	"record":      false,
	"log_level":   "info",
	"log_file":    "",
	"items_path":  "",
}

// Default returns the configuration used when no file or env var is set.
func Default() *Config {
	return &Config{
		Search:      SearchSubstring,
		Footer:      DefaultFooter,
		Placeholder: DefaultPlaceholder,
		Height:      8,
		DataDir:     ".pickr",
		LogLevel:    "info",
	}
}

// Load loads configuration with precedence
// ENV vars > project config > XDG global config > defaults.
// Command-line flags are applied on top by the caller.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("pickr")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("PICKR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit bindings so Unmarshal sees env-only keys.
	for key := range defaults {
		if err := v.BindEnv(key, "PICKR_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	if path := GlobalPath(); fileExists(path) {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	if path := ProjectPath(); fileExists(path) {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Validate checks values that viper cannot type-check.
func (c *Config) Validate() error {
	var errs []error
	switch c.Search {
	case SearchSubstring, SearchFuzzy:
	default:
		errs = append(errs, fmt.Errorf("search must be %q or %q, got %q", SearchSubstring, SearchFuzzy, c.Search))
	}
	if c.Height < 1 {
		errs = append(errs, fmt.Errorf("height must be positive, got %d", c.Height))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("data_dir is required"))
	}
	return errors.Join(errs...)
}

// Exists reports whether a global or project config file exists.
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns $XDG_CONFIG_HOME/pickr/pickr.yml, falling back to
// ~/.config/pickr/pickr.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pickr", "pickr.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pickr", "pickr.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "pickr.yml"
}

// WriteGlobal writes cfg to GlobalPath, creating its directory.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes cfg to ProjectPath.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
