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

// MemberAddOptions configures the member add workflow.
type MemberAddOptions struct {
	StorePath string
	Identity  *identity.Bundle

	// Name is the new member's team name.
	Name string

	// Pubkey is the new member's age public key. May be empty only for
	// RoleCI, which generates a keypair on the caller's behalf.
	Pubkey string

	// Role is the new member's administrative role.
	Role store.Role
}

// MemberAddResult contains the outcome of a member add operation.
type MemberAddResult struct {
	Role store.Role

	// Recipients is the team size after the add.
	Recipients int

	// Reencrypted is how many secrets were re-encrypted.
	Reencrypted int

	// GeneratedIdentity holds the private key generated for a CI
	// member added without a pubkey. Surfaced exactly once; never
	// persisted.
	GeneratedIdentity string
}

// MemberAdd adds a team member and re-encrypts every secret so the new
// member can decrypt them.
//
// Returns ErrNotTeamMember/ErrNotAdmin if the caller lacks authority,
// ErrMemberExists for a duplicate name, ErrInvalidPublicKey for a
// malformed key, and ErrDecryptFailed if the caller cannot decrypt an
// existing secret. On any error the store is unchanged.
func MemberAdd(ctx context.Context, opts MemberAddOptions) (*MemberAddResult, error) {
	result := &MemberAddResult{Role: opts.Role}

	pubkey := opts.Pubkey
	if pubkey == "" {
		if opts.Role != store.RoleCI {
			return nil, fmt.Errorf("%w: a public key is required for role %s", elerrors.ErrInvalidPublicKey, opts.Role)
		}
		generated, err := envelope.GenerateKeypair()
		if err != nil {
			return nil, err
		}
		pubkey = generated.Recipient().String()
		result.GeneratedIdentity = generated.String()
	}

	// Parse before touching the store so malformed input never reaches
	// the re-encryption pass.
	recipient, err := envelope.ParseRecipient(pubkey)
	if err != nil {
		return nil, fmt.Errorf("public key for %s: %w", opts.Name, err)
	}

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

		if _, exists := f.Team[opts.Name]; exists {
			return fmt.Errorf("%w: %s", elerrors.ErrMemberExists, opts.Name)
		}

		f.Team[opts.Name] = store.TeamMember{
			Pubkey: recipient.String(),
			Role:   opts.Role,
			Added:  nowDate(),
		}

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
		Operation:   "member_add",
		Target:      opts.Name,
		Role:        opts.Role.String(),
		Recipients:  result.Recipients,
		Reencrypted: result.Reencrypted,
	})
	return result, nil
}
