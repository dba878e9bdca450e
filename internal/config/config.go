package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sadopc/workday/internal/workday"
	"gopkg.in/yaml.v3"
)

// Config defines application configuration.
type Config struct {
	Target   string         `yaml:"target"`
	Rows     int            `yaml:"rows"`
	Log      LogConfig      `yaml:"log"`
	Settings SettingsConfig `yaml:"settings"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// SettingsConfig controls where preferences edited in the settings view
// are kept. Interval rows are never stored.
type SettingsConfig struct {
	Persist bool   `yaml:"persist"`
	Path    string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Target: workday.DefaultTarget.String(),
		Rows:   3,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from an optional .env file, an optional YAML
// file and environment variables, in that order.
func Load() (Config, error) {
	cfg := Default()

	// A missing .env is the normal case.
	_ = godotenv.Load()

	path, explicit := os.LookupEnv("WORKDAY_CONFIG")
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultPath returns <UserConfigDir>/workday/config.yaml, or "" when the
// user config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "workday", "config.yaml")
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if target := os.Getenv("WORKDAY_TARGET"); target != "" {
		cfg.Target = target
	}
	if rowsStr := os.Getenv("WORKDAY_ROWS"); rowsStr != "" {
		rows, err := strconv.Atoi(rowsStr)
		if err != nil {
			return fmt.Errorf("invalid WORKDAY_ROWS: %w", err)
		}
		cfg.Rows = rows
	}
	if level := os.Getenv("WORKDAY_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if file := os.Getenv("WORKDAY_LOG_FILE"); file != "" {
		cfg.Log.File = file
	}
	if persist := os.Getenv("WORKDAY_SETTINGS_PERSIST"); persist != "" {
		v, err := strconv.ParseBool(persist)
		if err != nil {
			return fmt.Errorf("invalid WORKDAY_SETTINGS_PERSIST: %w", err)
		}
		cfg.Settings.Persist = v
	}
	if path := os.Getenv("WORKDAY_SETTINGS_DB"); path != "" {
		cfg.Settings.Path = path
	}
	return nil
}

// Validate checks values that would otherwise surface as confusing UI
// state later.
func (c Config) Validate() error {
	if _, err := workday.ParseDuration(c.Target); err != nil {
		return fmt.Errorf("invalid target: %w", err)
	}
	if c.Rows < 1 || c.Rows > 50 {
		return fmt.Errorf("invalid rows %d: must be between 1 and 50", c.Rows)
	}
	return nil
}
