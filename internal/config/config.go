// Package config loads and saves user preferences as YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const (
	appName        = "clock"
	configFileName = "config.yaml"
	logFileName    = "clock.log"
)

// Config holds preferences. Timer lengths are deliberately absent: every
// launch starts from the defaults.
type Config struct {
	Bell         bool   `yaml:"bell"`
	History      bool   `yaml:"history"`
	ToastSeconds int    `yaml:"toast_seconds"`
	LogLevel     string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Bell:         true,
		History:      true,
		ToastSeconds: 1,
		LogLevel:     "info",
	}
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// DefaultDir returns ~/.config/clock
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, appName), nil
}

// DefaultPath returns ~/.config/clock/config.yaml
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LogPath returns the log file next to the config file at path.
func LogPath(path string) string {
	return filepath.Join(filepath.Dir(path), logFileName)
}

// fileConfig uses pointers so absent keys keep their defaults.
type fileConfig struct {
	Bell         *bool   `yaml:"bell"`
	History      *bool   `yaml:"history"`
	ToastSeconds *int    `yaml:"toast_seconds"`
	LogLevel     *string `yaml:"log_level"`
}

// Load reads preferences from path.
// If the file does not exist, default settings are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}

	apply(&cfg, fc)
	return cfg, nil
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func apply(cfg *Config, fc fileConfig) {
	if fc.Bell != nil {
		cfg.Bell = *fc.Bell
	}
	if fc.History != nil {
		cfg.History = *fc.History
	}
	if fc.ToastSeconds != nil && *fc.ToastSeconds >= 1 && *fc.ToastSeconds <= 30 {
		cfg.ToastSeconds = *fc.ToastSeconds
	}
	if fc.LogLevel != nil {
		if _, err := log.ParseLevel(*fc.LogLevel); err == nil {
			cfg.LogLevel = *fc.LogLevel
		}
	}
}
