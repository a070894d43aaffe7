package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/envlock-dev/envlock/internal/audit"
	elerrors "github.com/envlock-dev/envlock/internal/errors"
	"github.com/envlock-dev/envlock/internal/identity"
	"github.com/envlock-dev/envlock/internal/store"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	// StorePath is where the .envlock file lives (or will live).
	StorePath string

	// Identity is the caller's loaded identity bundle.
	Identity *identity.Bundle

	// Username is recorded as the initial admin's team name.
	Username string

	// Force indicates the identity was force-regenerated. Initializing
	// over an existing store with Force set is an error: the old team
	// table would reference the discarded key.
	Force bool
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// Created reports whether a new store was written.
	Created bool

	// Recipient is the caller's public key.
	Recipient string
}

// Init creates the store with the caller as sole admin, unless it
// already exists (which is not an error: init is idempotent).
//
// Returns ErrStoreExists if Force is set and a store is already present.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	result := &InitResult{Recipient: opts.Identity.Recipient}

	err := store.WithLock(opts.StorePath, func() error {
		if _, err := os.Stat(opts.StorePath); err == nil {
			if opts.Force {
				return elerrors.ErrStoreExists
			}
			return nil
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("checking %s: %w", opts.StorePath, err)
		}

		f := store.New(opts.Username, opts.Identity.Recipient, nowDate())
		if err := store.WriteAtomic(opts.StorePath, f); err != nil {
			return err
		}
		result.Created = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Created {
		audit.Log(opts.StorePath, audit.Entry{
			User:       opts.Username,
			Operation:  "init",
			Recipients: 1,
		})
	}
	return result, nil
}
