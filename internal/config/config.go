package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DefaultTimeout bounds one whole resolution batch when no timeout is
// configured.
const DefaultTimeout = 30 * time.Second

// Config holds the application-wide settings.
type Config struct {
	AWS     AWSConfig `mapstructure:"aws"`
	Timeout string    `mapstructure:"timeout"` // duration string, e.g. "45s"
}

// AWSConfig holds AWS related settings.
type AWSConfig struct {
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

// Load reads the project config and the default global config.
// Precedence: env vars > .secretlaunch.toml (current directory) >
// ~/.config/secretlaunch/config.toml.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return LoadFromDir(cwd)
	}

	globalDir := filepath.Join(homeDir, ".config", "secretlaunch")
	return LoadWithGlobalDir(cwd, globalDir)
}

// LoadFromDir reads .secretlaunch.toml from the given directory plus
// environment variables.
func LoadFromDir(dir string) (*Config, error) {
	return LoadWithGlobalDir(dir, "")
}

// LoadWithGlobalDir reads the global and project configs.
// Precedence: env vars > project config (.secretlaunch.toml) > global
// config (config.toml).
func LoadWithGlobalDir(projectDir, globalDir string) (*Config, error) {
	cfg := &Config{}

	if globalDir != "" {
		_ = loadTOML(globalDir, "config", cfg)
	}

	_ = loadTOML(projectDir, ".secretlaunch", cfg)

	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadTOML reads a TOML file from dir and merges it into cfg. Only
// values present in the file overwrite existing ones.
func loadTOML(dir, name string, cfg *Config) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	var fileCfg Config
	if err := v.Unmarshal(&fileCfg); err != nil {
		return err
	}

	if fileCfg.AWS.Region != "" {
		cfg.AWS.Region = fileCfg.AWS.Region
	}
	if fileCfg.AWS.Profile != "" {
		cfg.AWS.Profile = fileCfg.AWS.Profile
	}
	if fileCfg.Timeout != "" {
		cfg.Timeout = fileCfg.Timeout
	}

	return nil
}

// ApplyCLIOverrides overrides settings with CLI flag values. Empty
// arguments are ignored.
func ApplyCLIOverrides(cfg *Config, region, profile string, timeout time.Duration) {
	if region != "" {
		cfg.AWS.Region = region
	}
	if profile != "" {
		cfg.AWS.Profile = profile
	}
	if timeout > 0 {
		cfg.Timeout = timeout.String()
	}
}

// applyEnvOverrides overrides settings with environment variables.
// Precedence: SECRETLAUNCH_* > AWS_* (the standard AWS variables are the
// fallback).
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.AWS.Region = v
	}
	if v := os.Getenv("AWS_PROFILE"); v != "" {
		cfg.AWS.Profile = v
	}
	if v := os.Getenv("SECRETLAUNCH_AWS_REGION"); v != "" {
		cfg.AWS.Region = v
	}
	if v := os.Getenv("SECRETLAUNCH_AWS_PROFILE"); v != "" {
		cfg.AWS.Profile = v
	}
	if v := os.Getenv("SECRETLAUNCH_TIMEOUT"); v != "" {
		cfg.Timeout = v
	}
}

// ResolveTimeout parses the configured timeout. An unset timeout yields
// the default; a malformed or non-positive one is an error.
func (c *Config) ResolveTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q: must be positive", c.Timeout)
	}
	return d, nil
}
