package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// UserConfig is the optional per-user configuration at
// ~/.envlock/config.toml. Everything in it has a working default; the
// file only exists when the user has overridden something.
type UserConfig struct {
	Identity Identity `toml:"identity"`
	User     User     `toml:"user"`
}

// Identity overrides where the identity key file lives.
type Identity struct {
	Path string `toml:"path,omitempty"`
}

// User overrides the name recorded on team entries and secrets.
type User struct {
	Name string `toml:"name,omitempty"`
}

// Path returns the user config file path.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(home, ".envlock", "config.toml"), nil
}

// Load reads the user config. A missing file is not an error; it
// yields an empty config.
func Load() (*UserConfig, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	cfg := &UserConfig{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the user config, creating ~/.envlock if needed.
func Save(cfg *UserConfig) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
