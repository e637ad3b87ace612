// Package config loads the optional remtag configuration file.
//
// The file lives at ~/.config/remtag/config.yaml unless REMTAG_CONFIG points
// elsewhere. A missing file yields the zero Config; a file that exists but
// does not parse is an error, since silently ignoring it would hide a typo'd
// stores directory until a mutation hit the wrong file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the default config file location.
const EnvConfigPath = "REMTAG_CONFIG"

// Config holds the file-level settings. Command-line flags override any
// value set here.
type Config struct {
	// StoresDir overrides the host application's store directory.
	StoresDir string `yaml:"stores_dir,omitempty"`

	// BusyTimeoutMS bounds the lock busy-wait, in milliseconds.
	BusyTimeoutMS int `yaml:"busy_timeout_ms,omitempty"`

	// BackupDir receives backup copies instead of sibling paths.
	BackupDir string `yaml:"backup_dir,omitempty"`
}

// BusyTimeout returns the configured busy timeout, or zero when unset so
// callers fall back to the engine default.
func (c Config) BusyTimeout() time.Duration {
	return time.Duration(c.BusyTimeoutMS) * time.Millisecond
}

// DefaultPath returns the default config file location for the current user.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "remtag", "config.yaml"), nil
}

// Load reads the config file, honoring the REMTAG_CONFIG override. Returns
// the zero Config when no file exists.
func Load() (Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return Config{}, fmt.Errorf("derive config path: %w", err)
		}
	}
	return LoadFile(path)
}

// LoadFile reads and parses the config file at path. A missing file is not
// an error.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.BusyTimeoutMS < 0 {
		return Config{}, fmt.Errorf("parse config %s: busy_timeout_ms must not be negative", path)
	}
	return cfg, nil
}
