// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for drafter.
type Config struct {
	Model        string `mapstructure:"model" yaml:"model"`
	AutoCommit   bool   `mapstructure:"auto_commit" yaml:"auto_commit"`
	DataDir      string `mapstructure:"data_dir" yaml:"data_dir"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
	LogFile      string `mapstructure:"log_file" yaml:"log_file"`
	ContextLines int    `mapstructure:"context_lines" yaml:"context_lines"`
	HistoryLimit int    `mapstructure:"history_limit" yaml:"history_limit"`
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("drafter")

	v.SetDefault("model", "")
	v.SetDefault("auto_commit", true)
	v.SetDefault("data_dir", ".drafter")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("context_lines", 3)
	v.SetDefault("history_limit", 100)

	v.SetEnvPrefix("DRAFTER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit ENV bindings for better bool/int parsing.
	bindings := map[string]string{
		"model":         "DRAFTER_MODEL",
		"auto_commit":   "DRAFTER_AUTO_COMMIT",
		"data_dir":      "DRAFTER_DATA_DIR",
		"log_level":     "DRAFTER_LOG_LEVEL",
		"log_file":      "DRAFTER_LOG_FILE",
		"context_lines": "DRAFTER_CONTEXT_LINES",
		"history_limit": "DRAFTER_HISTORY_LIMIT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists).
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists).
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
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

// Validate checks configuration values that have hard constraints.
func (c *Config) Validate() error {
	if c.ContextLines < 0 {
		return fmt.Errorf("context_lines must be >= 0, got %d", c.ContextLines)
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("history_limit must be >= 1, got %d", c.HistoryLimit)
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path:
// $XDG_CONFIG_HOME/drafter/drafter.yml or ~/.config/drafter/drafter.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "drafter", "drafter.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "drafter", "drafter.yml")
}

// ProjectPath returns the project-local config path in the working directory.
func ProjectPath() string {
	return "drafter.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(ProjectPath(), data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
