// Package config loads rt's client configuration: config.yaml in the
// rt config dir, overridable with RT_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultAPIURL   = "https://api.routinely.app/api/v1"
	DefaultClientID = "rt-cli"
)

// Config is the resolved client configuration.
type Config struct {
	APIURL         string        `mapstructure:"api_url"`
	ClientID       string        `mapstructure:"client_id"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	NoColor        bool          `mapstructure:"no_color"`
}

// Dir returns the rt config directory, creating it if needed.
// RT_CONFIG_DIR overrides the platform default (mainly for tests).
func Dir() (string, error) {
	if dir := os.Getenv("RT_CONFIG_DIR"); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return "", fmt.Errorf("creating config dir: %w", err)
		}
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	dir := filepath.Join(base, "rt")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating config dir: %w", err)
	}
	return dir, nil
}

// Load reads config.yaml from the config dir (if present) and applies
// environment overrides. A missing config file is not an error.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("client_id", DefaultClientID)
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("no_color", false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("RT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}
