// Package config reads and writes the global ~/.clack/config.toml.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global ~/.clack/config.toml.
type Config struct {
	// DefaultProfile is used when no --profile flag is given.
	DefaultProfile string `toml:"default_profile"`
	// ListenAddr is the daemon's HTTP listen address.
	ListenAddr string `toml:"listen_addr"`
	// ServerAddr is the base URL clients use in remote mode.
	ServerAddr string `toml:"server_addr"`
	// Theme is the display theme used in remote mode, where no local KV
	// store exists to hold the preference.
	Theme string `toml:"theme"`
}

// DefaultListenAddr is used when config.toml does not set listen_addr.
const DefaultListenAddr = "127.0.0.1:7465"

// Load reads config from the given path. Returns zero config and error if
// file missing.
func Load(path string) (*Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

// ListenAddrOrDefault returns cfg.ListenAddr or the default when unset. Safe
// on a nil receiver so callers can use it straight after a failed Load.
func (c *Config) ListenAddrOrDefault() string {
	if c == nil || c.ListenAddr == "" {
		return DefaultListenAddr
	}
	return c.ListenAddr
}
