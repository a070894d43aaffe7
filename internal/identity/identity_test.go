package identity

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// isolateHome points HOME (and the XDG config dir) at a temp directory
// so tests never touch the real user's identity or config.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv(EnvIdentityPath, "")
	return home
}

func TestGenerateAndLoadIdentity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.age")

	generated, err := Generate(path)
	if err != nil {
		t.Fatalf("Failed to generate identity: %v", err)
	}
	if !strings.HasPrefix(generated.Recipient, "age1") {
		t.Errorf("Expected age1... recipient, got: %q", generated.Recipient)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load identity: %v", err)
	}
	if loaded.Recipient != generated.Recipient {
		t.Errorf("Expected %q, got: %q", generated.Recipient, loaded.Recipient)
	}
}

func TestIdentityFilePermissionsAreRestricted(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on Windows")
	}
	path := filepath.Join(t.TempDir(), "identity.age")

	if _, err := Generate(path); err != nil {
		t.Fatalf("Failed to generate identity: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat identity: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		t.Errorf("Expected mode 0600, got: %o", mode)
	}
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.age")
	if err := os.WriteFile(path, []byte("\n"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected an error for an empty identity file")
	}
}

func TestExpandHome(t *testing.T) {
	home := isolateHome(t)

	expanded, err := ExpandHome("~/identity.age")
	if err != nil {
		t.Fatalf("Failed to expand: %v", err)
	}
	if expanded != filepath.Join(home, "identity.age") {
		t.Errorf("Expected %q, got: %q", filepath.Join(home, "identity.age"), expanded)
	}

	// Paths without a ~ prefix pass through unchanged.
	plain, err := ExpandHome("/tmp/custom.age")
	if err != nil {
		t.Fatalf("Failed to expand: %v", err)
	}
	if plain != "/tmp/custom.age" {
		t.Errorf("Expected passthrough, got: %q", plain)
	}
}

func TestResolvePathPrefersOverride(t *testing.T) {
	isolateHome(t)

	resolved, err := ResolvePath("/tmp/custom.age")
	if err != nil {
		t.Fatalf("Failed to resolve: %v", err)
	}
	if resolved != "/tmp/custom.age" {
		t.Errorf("Expected the override, got: %q", resolved)
	}
}

func TestResolvePathUsesEnvVar(t *testing.T) {
	isolateHome(t)
	t.Setenv(EnvIdentityPath, "/tmp/from-env.age")

	resolved, err := ResolvePath("")
	if err != nil {
		t.Fatalf("Failed to resolve: %v", err)
	}
	if resolved != "/tmp/from-env.age" {
		t.Errorf("Expected the env var path, got: %q", resolved)
	}
}

func TestResolvePathFallsBackToDefault(t *testing.T) {
	home := isolateHome(t)

	resolved, err := ResolvePath("")
	if err != nil {
		t.Fatalf("Failed to resolve: %v", err)
	}
	if resolved != filepath.Join(home, ".envlock", "identity.age") {
		t.Errorf("Expected the default path, got: %q", resolved)
	}
}

func TestResolvePathPrefersLegacyWhenOnlyItExists(t *testing.T) {
	home := isolateHome(t)

	legacy := filepath.Join(home, ".config", "envlock", "identity.age")
	if err := os.MkdirAll(filepath.Dir(legacy), 0700); err != nil {
		t.Fatalf("Failed to create legacy dir: %v", err)
	}
	if _, err := Generate(legacy); err != nil {
		t.Fatalf("Failed to generate legacy identity: %v", err)
	}

	resolved, err := ResolvePath("")
	if err != nil {
		t.Fatalf("Failed to resolve: %v", err)
	}
	if resolved != legacy {
		t.Errorf("Expected the legacy path, got: %q", resolved)
	}
}

func TestLoadOrGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.age")

	first, generated, err := LoadOrGenerate(path, false)
	if err != nil {
		t.Fatalf("Failed first LoadOrGenerate: %v", err)
	}
	if !generated {
		t.Error("Expected a fresh key on first call")
	}

	second, generated, err := LoadOrGenerate(path, false)
	if err != nil {
		t.Fatalf("Failed second LoadOrGenerate: %v", err)
	}
	if generated {
		t.Error("Expected the existing key on second call")
	}
	if first.Recipient != second.Recipient {
		t.Error("Expected the same key to be loaded")
	}

	third, generated, err := LoadOrGenerate(path, true)
	if err != nil {
		t.Fatalf("Failed forced LoadOrGenerate: %v", err)
	}
	if !generated {
		t.Error("Expected force to regenerate")
	}
	if third.Recipient == second.Recipient {
		t.Error("Expected force to produce a different key")
	}
}

func TestDetectUsername(t *testing.T) {
	isolateHome(t)
	t.Setenv("USER", "carol")
	t.Setenv("USERNAME", "")

	if got := DetectUsername(); got != "carol" {
		t.Errorf("Expected carol, got: %q", got)
	}

	t.Setenv("USER", "")
	if got := DetectUsername(); got != "admin" {
		t.Errorf("Expected admin fallback, got: %q", got)
	}
}
