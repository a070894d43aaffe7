package workflows

import (
	"context"
	"fmt"

	"github.com/envlock-dev/envlock/internal/envelope"
	elerrors "github.com/envlock-dev/envlock/internal/errors"
	"github.com/envlock-dev/envlock/internal/identity"
	"github.com/envlock-dev/envlock/internal/store"
)

// GetOptions configures the get workflow.
type GetOptions struct {
	StorePath string
	Identity  *identity.Bundle
	Env       string
	Key       string
}

// GetResult contains the decrypted secret.
type GetResult struct {
	Value string
}

// Get decrypts and returns one secret. Reads take no lock: the atomic
// rename guarantees a reader always sees a complete snapshot.
//
// Returns ErrSecretNotFound for an unknown key, ErrDecryptFailed if
// the caller's identity is not among the envelope's recipients.
func Get(ctx context.Context, opts GetOptions) (*GetResult, error) {
	if err := requireDefaultEnv(opts.Env); err != nil {
		return nil, err
	}

	f, err := store.Read(opts.StorePath)
	if err != nil {
		return nil, err
	}

	env, ok := f.DefaultEnv()
	if !ok {
		return nil, fmt.Errorf("%w: %s", elerrors.ErrSecretNotFound, opts.Key)
	}
	entry, ok := env[opts.Key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", elerrors.ErrSecretNotFound, opts.Key)
	}

	plaintext, err := envelope.Decrypt(entry.Value, opts.Identity.Identity)
	if err != nil {
		return nil, err
	}
	return &GetResult{Value: plaintext}, nil
}
