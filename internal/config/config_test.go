package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadMissingConfigIsEmpty(t *testing.T) {
	isolateHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error for a missing config, got: %v", err)
	}
	if cfg.Identity.Path != "" || cfg.User.Name != "" {
		t.Errorf("Expected empty config, got: %+v", cfg)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	home := isolateHome(t)

	cfg := &UserConfig{}
	cfg.Identity.Path = "/keys/work.age"
	cfg.User.Name = "carol"
	if err := Save(cfg); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(filepath.Join(home, ".envlock", "config.toml")); err != nil {
		t.Fatalf("Expected config file to exist: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if loaded.Identity.Path != "/keys/work.age" {
		t.Errorf("Expected identity path to round-trip, got: %q", loaded.Identity.Path)
	}
	if loaded.User.Name != "carol" {
		t.Errorf("Expected user name to round-trip, got: %q", loaded.User.Name)
	}
}
