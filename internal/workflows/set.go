package workflows

import (
	"context"
	"fmt"

	"github.com/envlock-dev/envlock/internal/audit"
	"github.com/envlock-dev/envlock/internal/envelope"
	elerrors "github.com/envlock-dev/envlock/internal/errors"
	"github.com/envlock-dev/envlock/internal/identity"
	"github.com/envlock-dev/envlock/internal/store"
)

// SetOptions configures the set workflow.
type SetOptions struct {
	StorePath string
	Identity  *identity.Bundle

	// Username is recorded as the secret's setter.
	Username string

	// Env must be the default environment.
	Env string

	// Key is the secret name, [A-Z_][A-Z0-9_]*.
	Key string

	// Value is the plaintext to encrypt.
	Value string
}

// SetResult contains the outcome of a set operation.
type SetResult struct {
	// Recipients is how many team members can decrypt the new entry.
	Recipients int
}

// Set encrypts a key/value pair to the full current team and stores it
// with the caller's name and a fresh timestamp.
//
// Returns ErrUnsupportedEnvironment or ErrInvalidSecretKey before any
// I/O, ErrStoreNotFound if there is no store, and ErrNoRecipients for
// an empty team.
func Set(ctx context.Context, opts SetOptions) (*SetResult, error) {
	if err := requireDefaultEnv(opts.Env); err != nil {
		return nil, err
	}
	if err := ValidateSecretKey(opts.Key); err != nil {
		return nil, err
	}

	result := &SetResult{}
	err := store.WithLock(opts.StorePath, func() error {
		f, err := store.Read(opts.StorePath)
		if err != nil {
			return err
		}

		recipients, err := parseTeamRecipients(f)
		if err != nil {
			return err
		}

		sealed, err := envelope.Encrypt(opts.Value, recipients)
		if err != nil {
			return err
		}
		// The caller must be able to read back what they just wrote.
		if _, err := envelope.Decrypt(sealed, opts.Identity.Identity); err != nil {
			return fmt.Errorf("verifying own access to %s: %w", opts.Key, err)
		}

		f.DefaultEnvMut()[opts.Key] = store.SecretEntry{
			Value:    sealed,
			SetBy:    opts.Username,
			Modified: nowStamp(),
		}

		if err := store.WriteAtomic(opts.StorePath, f); err != nil {
			return err
		}
		result.Recipients = len(recipients)
		return nil
	})
	if err != nil {
		return nil, err
	}

	audit.Log(opts.StorePath, audit.Entry{
		User:        opts.Username,
		Operation:   "set",
		Environment: opts.Env,
		Key:         opts.Key,
		Recipients:  result.Recipients,
	})
	return result, nil
}

// ValidateSecretKey enforces the identifier charset for secret names:
// uppercase letters, digits, underscore, not starting with a digit.
func ValidateSecretKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", elerrors.ErrInvalidSecretKey)
	}
	for i, c := range key {
		switch {
		case c == '_' || (c >= 'A' && c <= 'Z'):
		case c >= '0' && c <= '9':
			if i == 0 {
				return fmt.Errorf("%w: %q must start with A-Z or _", elerrors.ErrInvalidSecretKey, key)
			}
		default:
			return fmt.Errorf("%w: %q may use only A-Z, 0-9, _", elerrors.ErrInvalidSecretKey, key)
		}
	}
	return nil
}
