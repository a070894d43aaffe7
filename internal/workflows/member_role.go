package workflows

import (
	"context"
	"fmt"

	"github.com/envlock-dev/envlock/internal/audit"
	elerrors "github.com/envlock-dev/envlock/internal/errors"
	"github.com/envlock-dev/envlock/internal/identity"
	"github.com/envlock-dev/envlock/internal/store"
)

// MemberSetRoleOptions configures the role change workflow.
type MemberSetRoleOptions struct {
	StorePath string
	Identity  *identity.Bundle

	// Name is the member whose role changes.
	Name string

	// NewRole is the role to assign. Must differ from the current one.
	NewRole store.Role
}

// MemberSetRoleResult contains the outcome of a role change.
type MemberSetRoleResult struct {
	// OldRole is the role the member had before the change.
	OldRole store.Role

	// Recipients is the team size (unchanged by a role change).
	Recipients int

	// Reencrypted is how many secrets were re-encrypted.
	Reencrypted int
}

// MemberSetRole changes a member's administrative role.
//
// Role does not gate ciphertext access, so the recipient set is the
// same before and after; secrets are still re-encrypted, like every
// other team mutation, so each envelope gets fresh randomness on any
// team-table write.
//
// Returns ErrMemberNotFound, ErrSelfTarget, or ErrSameRole on gate
// violations; the store is unchanged on any error.
func MemberSetRole(ctx context.Context, opts MemberSetRoleOptions) (*MemberSetRoleResult, error) {
	result := &MemberSetRoleResult{}

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

		member, exists := f.Team[opts.Name]
		if !exists {
			return fmt.Errorf("%w: %s", elerrors.ErrMemberNotFound, opts.Name)
		}
		if opts.Name == caller {
			return fmt.Errorf("%w: cannot change your own role", elerrors.ErrSelfTarget)
		}
		if member.Role == opts.NewRole {
			return fmt.Errorf("%w: %s is already %s", elerrors.ErrSameRole, opts.Name, opts.NewRole)
		}

		result.OldRole = member.Role
		member.Role = opts.NewRole
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
		Operation:   "member_role",
		Target:      opts.Name,
		Role:        opts.NewRole.String(),
		Recipients:  result.Recipients,
		Reencrypted: result.Reencrypted,
	})
	return result, nil
}
