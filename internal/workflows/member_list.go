package workflows

import (
	"context"

	"github.com/envlock-dev/envlock/internal/store"
)

// MemberListOptions configures the member list workflow.
type MemberListOptions struct {
	StorePath string
}

// MemberRow is one row of team metadata.
type MemberRow struct {
	Name         string
	Role         store.Role
	Environments string
	Added        string
}

// MemberListResult contains team rows sorted by name.
type MemberListResult struct {
	Members []MemberRow
}

// MemberList returns the team table. Public keys are omitted from the
// rows; `envlock member ls` is a membership view, not a key export.
func MemberList(ctx context.Context, opts MemberListOptions) (*MemberListResult, error) {
	f, err := store.Read(opts.StorePath)
	if err != nil {
		return nil, err
	}

	result := &MemberListResult{}
	for _, name := range f.MemberNames() {
		member := f.Team[name]
		result.Members = append(result.Members, MemberRow{
			Name:         name,
			Role:         member.Role,
			Environments: store.DefaultEnvName,
			Added:        member.Added,
		})
	}
	return result, nil
}
