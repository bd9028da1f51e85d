// Package config loads the bridge configuration from an optional JSON file,
// applying defaults for anything left unset.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	ErrConfigNotFound = errors.New("configuration file not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Config holds the bridge server settings.
type Config struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	WSPath string `json:"ws_path"`

	// NgrokDomain is the custom tunnel domain used when tunneling is
	// enabled; empty means an ephemeral ngrok domain.
	NgrokDomain string `json:"ngrok_domain,omitempty"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Host:   "localhost",
		Port:   8080,
		WSPath: "/ws",
	}
}

// Load reads a configuration file and fills unset fields from the defaults.
// A missing file yields ErrConfigNotFound so callers can fall back to
// Default without treating it as fatal.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: host must not be empty", ErrInvalidConfig)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if c.WSPath == "" || c.WSPath[0] != '/' {
		return fmt.Errorf("%w: ws_path must start with /", ErrInvalidConfig)
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
