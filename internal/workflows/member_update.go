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

// MemberUpdateKeyOptions configures the member update workflow.
type MemberUpdateKeyOptions struct {
	StorePath string
	Identity  *identity.Bundle

	// Name is the member whose public key is replaced.
	Name string

	// NewPubkey is the replacement age public key.
	NewPubkey string
}

// MemberUpdateKeyResult contains the outcome of a key update.
type MemberUpdateKeyResult struct {
	// Recipients is the team size (unchanged by an update).
	Recipients int

	// Reencrypted is how many secrets were re-encrypted.
	Reencrypted int
}

// MemberUpdateKey replaces a member's public key and re-encrypts every
// secret, so the old key can no longer decrypt anything.
//
// An admin cannot rotate their own key; a second admin must do it,
// which guarantees a reachable admin always exists. Returns
// ErrMemberNotFound, ErrSelfTarget, or ErrSamePublicKey on gate
// violations; the store is unchanged on any error.
func MemberUpdateKey(ctx context.Context, opts MemberUpdateKeyOptions) (*MemberUpdateKeyResult, error) {
	recipient, err := envelope.ParseRecipient(opts.NewPubkey)
	if err != nil {
		return nil, fmt.Errorf("public key for %s: %w", opts.Name, err)
	}

	result := &MemberUpdateKeyResult{}
	var caller string
	err = store.WithLock(opts.StorePath, func() error {
		f, err := store.Read(opts.StorePath)
		if err != nil {
			return err
		}

		caller, err = requireAdmin(f, opts.Identity)
		if err != nil {
			return err
		}

		member, exists := f.Team[opts.Name]
		if !exists {
			return fmt.Errorf("%w: %s", elerrors.ErrMemberNotFound, opts.Name)
		}
		if opts.Name == caller {
			return fmt.Errorf("%w: another admin must rotate your key", elerrors.ErrSelfTarget)
		}
		if member.Pubkey == recipient.String() {
			return fmt.Errorf("%w: %s", elerrors.ErrSamePublicKey, opts.Name)
		}

		member.Pubkey = recipient.String()
		f.Team[opts.Name] = member

		reencrypted, err := reencryptAll(f, opts.Identity)
		if err != nil {
			return err
		}

		if err := store.WriteAtomic(opts.StorePath, f); err != nil {
			return err
		}
		result.Recipients = len(f.Team)
		result.Reencrypted = reencrypted
		return nil
	})
	if err != nil {
		return nil, err
	}

	audit.Log(opts.StorePath, audit.Entry{
		User:        caller,
		Operation:   "member_update",
		Target:      opts.Name,
		Recipients:  result.Recipients,
		Reencrypted: result.Reencrypted,
	})
	return result, nil
}
