package workflows

import (
	"context"
	"os"
	"testing"

	"github.com/envlock-dev/envlock/internal/envelope"
	"github.com/envlock-dev/envlock/internal/identity"
	"github.com/envlock-dev/envlock/internal/store"
)

// newBundle creates an in-memory identity for tests; nothing touches
// the user's real key files.
func newBundle(t *testing.T) *identity.Bundle {
	t.Helper()
	id, err := envelope.GenerateKeypair()
	if err != nil {
		t.Fatalf("Failed to generate identity: %v", err)
	}
	return &identity.Bundle{
		Identity:  id,
		Recipient: id.Recipient().String(),
	}
}

// initTestStore initializes a store in a temp directory with alice as
// sole admin and returns its path and her bundle.
func initTestStore(t *testing.T) (string, *identity.Bundle) {
	t.Helper()
	path := store.Path(t.TempDir())
	alice := newBundle(t)

	result, err := Init(context.Background(), InitOptions{
		StorePath: path,
		Identity:  alice,
		Username:  "alice",
	})
	if err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	if !result.Created {
		t.Fatal("Expected a fresh store to be created")
	}
	return path, alice
}

// setSecret stores one secret as the given user.
func setSecret(t *testing.T, path string, bundle *identity.Bundle, username, key, value string) {
	t.Helper()
	if _, err := Set(context.Background(), SetOptions{
		StorePath: path,
		Identity:  bundle,
		Username:  username,
		Env:       store.DefaultEnvName,
		Key:       key,
		Value:     value,
	}); err != nil {
		t.Fatalf("Failed to set %s: %v", key, err)
	}
}

// getSecret decrypts one secret with the given identity.
func getSecret(t *testing.T, path string, bundle *identity.Bundle, key string) (string, error) {
	t.Helper()
	result, err := Get(context.Background(), GetOptions{
		StorePath: path,
		Identity:  bundle,
		Env:       store.DefaultEnvName,
		Key:       key,
	})
	if err != nil {
		return "", err
	}
	return result.Value, nil
}

// addMember adds a member as alice (or whichever admin bundle is passed).
func addMember(t *testing.T, path string, admin *identity.Bundle, name, pubkey string, role store.Role) *MemberAddResult {
	t.Helper()
	result, err := MemberAdd(context.Background(), MemberAddOptions{
		StorePath: path,
		Identity:  admin,
		Name:      name,
		Pubkey:    pubkey,
		Role:      role,
	})
	if err != nil {
		t.Fatalf("Failed to add %s: %v", name, err)
	}
	return result
}

// storeBytes reads the raw store file for byte-identical comparisons.
func storeBytes(t *testing.T, path string) []byte {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read store file: %v", err)
	}
	return raw
}

// secretCiphertext returns the stored ciphertext for a key.
func secretCiphertext(t *testing.T, path, key string) string {
	t.Helper()
	f, err := store.Read(path)
	if err != nil {
		t.Fatalf("Failed to read store: %v", err)
	}
	env, ok := f.DefaultEnv()
	if !ok {
		t.Fatal("Expected default environment")
	}
	entry, ok := env[key]
	if !ok {
		t.Fatalf("Expected %s in store", key)
	}
	return entry.Value
}
