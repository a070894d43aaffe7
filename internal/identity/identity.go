package identity

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"

	"github.com/envlock-dev/envlock/internal/config"
	"github.com/envlock-dev/envlock/internal/envelope"
)

// EnvIdentityPath is the environment variable overriding the identity
// file location.
const EnvIdentityPath = "ENVLOCK_IDENTITY"

// Bundle holds a loaded identity for the duration of one invocation.
// The private key is never serialized by the engine; only Recipient
// ever ends up in the store.
type Bundle struct {
	Identity  *age.X25519Identity
	Recipient string
	Path      string
}

// DetectUsername returns the name recorded on team entries and
// secrets: the config override if set, else $USER or $USERNAME, else
// "admin".
func DetectUsername() string {
	if cfg, err := config.Load(); err == nil && cfg.User.Name != "" {
		return cfg.User.Name
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	if u := os.Getenv("USERNAME"); u != "" {
		return u
	}
	return "admin"
}

// DefaultPath returns ~/.envlock/identity.age.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(home, ".envlock", "identity.age"), nil
}

// LegacyPath returns the pre-1.0 identity location under the user
// config directory. Read as a fallback, never written.
func LegacyPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("determining config directory: %w", err)
	}
	return filepath.Join(base, "envlock", "identity.age"), nil
}

// ExpandHome expands a leading ~ or ~/ in path.
func ExpandHome(path string) (string, error) {
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("determining home directory: %w", err)
		}
		return home, nil
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("determining home directory: %w", err)
		}
		return filepath.Join(home, rest), nil
	}
	return path, nil
}

// ResolvePath picks the identity file to use. Precedence: the explicit
// override (the --identity flag), ENVLOCK_IDENTITY, the identity.path
// config override, the default path if it exists, the legacy path if
// it exists, and finally the default path for fresh generation.
func ResolvePath(override string) (string, error) {
	if override == "" {
		override = os.Getenv(EnvIdentityPath)
	}
	if override == "" {
		if cfg, err := config.Load(); err == nil {
			override = cfg.Identity.Path
		}
	}
	if override != "" {
		return ExpandHome(override)
	}

	def, err := DefaultPath()
	if err != nil {
		return "", err
	}
	if fileExists(def) {
		return def, nil
	}
	if legacy, err := LegacyPath(); err == nil && fileExists(legacy) {
		return legacy, nil
	}
	return def, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Generate creates a new identity file at path with 0600 permissions
// and returns the loaded bundle.
func Generate(path string) (*Bundle, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}

	id, err := envelope.GenerateKeypair()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(id.String()+"\n"), 0600); err != nil {
		return nil, fmt.Errorf("writing identity to %s: %w", path, err)
	}
	// WriteFile does not change the mode of a pre-existing file.
	if err := os.Chmod(path, 0600); err != nil {
		return nil, fmt.Errorf("restricting permissions on %s: %w", path, err)
	}

	return Load(path)
}

// Load reads and parses the identity file at path.
func Load(path string) (*Bundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading identity at %s: %w", path, err)
	}
	key := strings.TrimSpace(string(raw))
	if key == "" {
		return nil, fmt.Errorf("identity file %s is empty", path)
	}

	id, err := envelope.ParseIdentity(key)
	if err != nil {
		return nil, fmt.Errorf("identity in %s: %w", path, err)
	}

	return &Bundle{
		Identity:  id,
		Recipient: id.Recipient().String(),
		Path:      path,
	}, nil
}

// LoadOrGenerate loads the identity at path, generating it first when
// missing or when force is set. The bool reports whether a new key was
// generated.
func LoadOrGenerate(path string, force bool) (*Bundle, bool, error) {
	if force || !fileExists(path) {
		bundle, err := Generate(path)
		if err != nil {
			return nil, false, err
		}
		return bundle, true, nil
	}

	bundle, err := Load(path)
	if err != nil {
		return nil, false, err
	}
	return bundle, false, nil
}
