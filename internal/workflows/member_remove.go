package workflows

import (
	"context"
	"fmt"

	"github.com/envlock-dev/envlock/internal/audit"
	elerrors "github.com/envlock-dev/envlock/internal/errors"
	"github.com/envlock-dev/envlock/internal/identity"
	"github.com/envlock-dev/envlock/internal/store"
)

// MemberRemoveOptions configures the member remove workflow.
type MemberRemoveOptions struct {
	StorePath string
	Identity  *identity.Bundle

	// Name is the member to remove.
	Name string
}

// MemberRemoveResult contains the outcome of a member remove operation.
type MemberRemoveResult struct {
	// Recipients is the team size after the removal.
	Recipients int

	// Reencrypted is how many secrets were re-encrypted.
	Reencrypted int
}

// MemberRemove removes a team member and re-encrypts every secret to
// the remaining team, so the removed member's key can no longer
// decrypt anything.
//
// Returns ErrMemberNotFound for an unknown name and ErrSelfTarget when
// an admin tries to remove themself. On any error the store is
// unchanged.
func MemberRemove(ctx context.Context, opts MemberRemoveOptions) (*MemberRemoveResult, error) {
	result := &MemberRemoveResult{}

	var caller string
	err := store.WithLock(opts.StorePath, func() error {
		f, err := store.Read(opts.StorePath)
		if err != nil {
			return err
		}

		caller, err = requireAdmin(f, opts.Identity)
		if err != nil {
			return err
		}

		if _, exists := f.Team[opts.Name]; !exists {
			return fmt.Errorf("%w: %s", elerrors.ErrMemberNotFound, opts.Name)
		}
		if opts.Name == caller {
			return fmt.Errorf("%w: cannot remove your own admin entry", elerrors.ErrSelfTarget)
		}

		delete(f.Team, opts.Name)

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
		Operation:   "member_remove",
		Target:      opts.Name,
		Recipients:  result.Recipients,
		Reencrypted: result.Reencrypted,
	})
	return result, nil
}
