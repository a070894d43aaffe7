package workflows

import (
	"fmt"
	"sort"
	"time"

	"filippo.io/age"

	"github.com/envlock-dev/envlock/internal/envelope"
	elerrors "github.com/envlock-dev/envlock/internal/errors"
	"github.com/envlock-dev/envlock/internal/identity"
	"github.com/envlock-dev/envlock/internal/store"
)

// parseTeamRecipients parses every member's public key, in stable name
// order. A single malformed key fails the whole set, so bad input
// never reaches an encryption pass.
func parseTeamRecipients(f *store.File) ([]*age.X25519Recipient, error) {
	names := f.MemberNames()
	recipients := make([]*age.X25519Recipient, 0, len(names))
	for _, name := range names {
		r, err := envelope.ParseRecipient(f.Team[name].Pubkey)
		if err != nil {
			return nil, fmt.Errorf("team member %s: %w", name, err)
		}
		recipients = append(recipients, r)
	}
	if len(recipients) == 0 {
		return nil, elerrors.ErrNoRecipients
	}
	return recipients, nil
}

// requireAdmin resolves the caller's team entry by public key and
// checks the admin role. Returns the caller's team name.
func requireAdmin(f *store.File, caller *identity.Bundle) (string, error) {
	name, member, ok := f.MemberForPubkey(caller.Recipient)
	if !ok {
		return "", elerrors.ErrNotTeamMember
	}
	if member.Role != store.RoleAdmin {
		return "", fmt.Errorf("%w: %s has role %s", elerrors.ErrNotAdmin, name, member.Role)
	}
	return name, nil
}

// reencryptAll decrypts every stored secret with the caller's identity
// and re-encrypts it to the current team, replacing only the
// ciphertext. Entries are processed in environment-then-key order so
// behavior is reproducible. Decrypting with the caller's own key
// doubles as a liveness check that the caller still has access; any
// failure aborts before anything is persisted.
func reencryptAll(f *store.File, caller *identity.Bundle) (int, error) {
	recipients, err := parseTeamRecipients(f)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, envName := range sortedKeys(f.Environments) {
		env := f.Environments[envName]
		for _, key := range sortedKeys(env) {
			entry := env[key]
			plaintext, err := envelope.Decrypt(entry.Value, caller.Identity)
			if err != nil {
				return 0, fmt.Errorf("re-encrypting %s/%s: %w", envName, key, err)
			}
			sealed, err := envelope.Encrypt(plaintext, recipients)
			if err != nil {
				return 0, fmt.Errorf("re-encrypting %s/%s: %w", envName, key, err)
			}
			entry.Value = sealed
			env[key] = entry
			count++
		}
	}
	return count, nil
}

// requireDefaultEnv rejects any environment name other than default
// before any I/O happens.
func requireDefaultEnv(env string) error {
	if env != store.DefaultEnvName {
		return fmt.Errorf("%w: got %q", elerrors.ErrUnsupportedEnvironment, env)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func nowDate() string {
	return time.Now().UTC().Format("2006-01-02")
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
