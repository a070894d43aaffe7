package workflows

import (
	"bytes"
	"context"
	"errors"
	"testing"

	elerrors "github.com/envlock-dev/envlock/internal/errors"
	"github.com/envlock-dev/envlock/internal/store"
)

func TestInitCreatesStoreWithSoleAdmin(t *testing.T) {
	path, alice := initTestStore(t)

	f, err := store.Read(path)
	if err != nil {
		t.Fatalf("Failed to read store: %v", err)
	}
	member, ok := f.Team["alice"]
	if !ok {
		t.Fatal("Expected alice in team")
	}
	if member.Role != store.RoleAdmin {
		t.Errorf("Expected admin role, got: %s", member.Role)
	}
	if member.Pubkey != alice.Recipient {
		t.Errorf("Expected alice's pubkey recorded, got: %q", member.Pubkey)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	path, alice := initTestStore(t)
	before := storeBytes(t, path)

	result, err := Init(context.Background(), InitOptions{
		StorePath: path,
		Identity:  alice,
		Username:  "alice",
	})
	if err != nil {
		t.Fatalf("Second init failed: %v", err)
	}
	if result.Created {
		t.Error("Expected second init to leave the store alone")
	}
	if !bytes.Equal(before, storeBytes(t, path)) {
		t.Error("Expected the store file to be unchanged")
	}
}

func TestInitForceBlockedOverExistingStore(t *testing.T) {
	path, alice := initTestStore(t)

	_, err := Init(context.Background(), InitOptions{
		StorePath: path,
		Identity:  alice,
		Username:  "alice",
		Force:     true,
	})
	if !errors.Is(err, elerrors.ErrStoreExists) {
		t.Errorf("Expected ErrStoreExists, got: %v", err)
	}
}

func TestSetAndGetRoundTrip(t *testing.T) {
	path, alice := initTestStore(t)

	setSecret(t, path, alice, "alice", "API_KEY", "shhh")

	value, err := getSecret(t, path, alice, "API_KEY")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if value != "shhh" {
		t.Errorf("Expected \"shhh\", got: %q", value)
	}

	f, err := store.Read(path)
	if err != nil {
		t.Fatalf("Failed to read store: %v", err)
	}
	env, _ := f.DefaultEnv()
	if env["API_KEY"].SetBy != "alice" {
		t.Errorf("Expected setter alice, got: %q", env["API_KEY"].SetBy)
	}
	if env["API_KEY"].Modified == "" {
		t.Error("Expected a modified timestamp")
	}
}

func TestSetOverwritesAndRefreshesProvenance(t *testing.T) {
	path, alice := initTestStore(t)

	setSecret(t, path, alice, "alice", "API_KEY", "old")
	setSecret(t, path, alice, "bob", "API_KEY", "new")

	value, err := getSecret(t, path, alice, "API_KEY")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if value != "new" {
		t.Errorf("Expected \"new\", got: %q", value)
	}

	f, _ := store.Read(path)
	env, _ := f.DefaultEnv()
	if env["API_KEY"].SetBy != "bob" {
		t.Errorf("Expected setter bob after overwrite, got: %q", env["API_KEY"].SetBy)
	}
}

func TestValidateSecretKey(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "_TOKEN_1", "A", "_"} {
		if err := ValidateSecretKey(key); err != nil {
			t.Errorf("Expected %q to be valid, got: %v", key, err)
		}
	}
	for _, key := range []string{"", "database_url", "1DATABASE", "API-KEY", "API KEY"} {
		if err := ValidateSecretKey(key); !errors.Is(err, elerrors.ErrInvalidSecretKey) {
			t.Errorf("Expected ErrInvalidSecretKey for %q, got: %v", key, err)
		}
	}
}

func TestSetRejectsInvalidKeyBeforeAnyIO(t *testing.T) {
	// No store exists; an invalid key must fail validation, not with
	// a missing-store error.
	_, err := Set(context.Background(), SetOptions{
		StorePath: store.Path(t.TempDir()),
		Identity:  newBundle(t),
		Username:  "alice",
		Env:       store.DefaultEnvName,
		Key:       "lowercase",
		Value:     "x",
	})
	if !errors.Is(err, elerrors.ErrInvalidSecretKey) {
		t.Errorf("Expected ErrInvalidSecretKey, got: %v", err)
	}
}

func TestNonDefaultEnvironmentRejected(t *testing.T) {
	path, alice := initTestStore(t)

	_, err := Set(context.Background(), SetOptions{
		StorePath: path, Identity: alice, Username: "alice",
		Env: "production", Key: "API_KEY", Value: "x",
	})
	if !errors.Is(err, elerrors.ErrUnsupportedEnvironment) {
		t.Errorf("Expected ErrUnsupportedEnvironment from Set, got: %v", err)
	}

	_, err = Get(context.Background(), GetOptions{
		StorePath: path, Identity: alice, Env: "production", Key: "API_KEY",
	})
	if !errors.Is(err, elerrors.ErrUnsupportedEnvironment) {
		t.Errorf("Expected ErrUnsupportedEnvironment from Get, got: %v", err)
	}

	_, err = List(context.Background(), ListOptions{StorePath: path, Env: "production"})
	if !errors.Is(err, elerrors.ErrUnsupportedEnvironment) {
		t.Errorf("Expected ErrUnsupportedEnvironment from List, got: %v", err)
	}
}

func TestGetUnknownKey(t *testing.T) {
	path, alice := initTestStore(t)

	_, err := getSecret(t, path, alice, "NOPE")
	if !errors.Is(err, elerrors.ErrSecretNotFound) {
		t.Errorf("Expected ErrSecretNotFound, got: %v", err)
	}
}

func TestGetWithoutStore(t *testing.T) {
	_, err := Get(context.Background(), GetOptions{
		StorePath: store.Path(t.TempDir()),
		Identity:  newBundle(t),
		Env:       store.DefaultEnvName,
		Key:       "API_KEY",
	})
	if !errors.Is(err, elerrors.ErrStoreNotFound) {
		t.Errorf("Expected ErrStoreNotFound, got: %v", err)
	}
}

func TestListReturnsSortedMetadata(t *testing.T) {
	path, alice := initTestStore(t)
	setSecret(t, path, alice, "alice", "ZEBRA", "z")
	setSecret(t, path, alice, "alice", "ALPHA", "a")

	result, err := List(context.Background(), ListOptions{
		StorePath: path,
		Env:       store.DefaultEnvName,
	})
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got: %d", len(result.Entries))
	}
	if result.Entries[0].Key != "ALPHA" || result.Entries[1].Key != "ZEBRA" {
		t.Errorf("Expected sorted keys, got: %s, %s", result.Entries[0].Key, result.Entries[1].Key)
	}
}
