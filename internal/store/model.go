package store

import (
	"fmt"
	"sort"

	elerrors "github.com/envlock-dev/envlock/internal/errors"
)

const (
	// Version is the single store format version this build reads and writes.
	Version = 1

	// FileName is the well-known store filename in the working directory.
	FileName = ".envlock"

	// DefaultEnvName is the only environment name current commands accept.
	DefaultEnvName = "default"
)

// Role is a team member's administrative role. Roles gate who may
// mutate the team; they do not gate ciphertext access. Every member,
// of any role, is an encryption recipient for every secret.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleMember   Role = "member"
	RoleCI       Role = "ci"
	RoleReadonly Role = "readonly"
)

// ParseRole converts a lowercase role token into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleMember, RoleCI, RoleReadonly:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q (expected admin, member, ci, or readonly)", elerrors.ErrInvalidRole, s)
	}
}

func (r Role) String() string { return string(r) }

// TeamMember is one entry in the team table.
type TeamMember struct {
	Pubkey string `yaml:"pubkey"`
	Role   Role   `yaml:"role"`
	Added  string `yaml:"added"`

	// Environments is reserved for per-environment access scoping.
	// Nothing reads it yet.
	Environments []string `yaml:"environments,omitempty"`
}

// SecretEntry is one encrypted value plus its provenance. Rotation
// replaces Value only; SetBy and Modified describe the plaintext, which
// rotation does not change.
type SecretEntry struct {
	Value    string `yaml:"value"`
	SetBy    string `yaml:"set_by"`
	Modified string `yaml:"modified"`
}

// File is the persisted root of the store.
type File struct {
	Version      int                               `yaml:"version"`
	Team         map[string]TeamMember             `yaml:"team"`
	Environments map[string]map[string]SecretEntry `yaml:"environments"`
}

// New returns a fresh store with the given identity as sole admin and
// an empty default environment.
func New(name, pubkey, added string) *File {
	return &File{
		Version: Version,
		Team: map[string]TeamMember{
			name: {Pubkey: pubkey, Role: RoleAdmin, Added: added},
		},
		Environments: map[string]map[string]SecretEntry{
			DefaultEnvName: {},
		},
	}
}

// EnsureSupportedVersion fails closed on any version this build does
// not understand. No partial interpretation of the rest of the file.
func (f *File) EnsureSupportedVersion() error {
	if f.Version != Version {
		return fmt.Errorf("%w: got %d, this build understands %d", elerrors.ErrUnsupportedVersion, f.Version, Version)
	}
	return nil
}

// DefaultEnv returns the default environment's secrets, if present.
func (f *File) DefaultEnv() (map[string]SecretEntry, bool) {
	env, ok := f.Environments[DefaultEnvName]
	return env, ok
}

// DefaultEnvMut returns the default environment's secrets, creating
// the environment if missing.
func (f *File) DefaultEnvMut() map[string]SecretEntry {
	if f.Environments == nil {
		f.Environments = make(map[string]map[string]SecretEntry)
	}
	env, ok := f.Environments[DefaultEnvName]
	if !ok {
		env = make(map[string]SecretEntry)
		f.Environments[DefaultEnvName] = env
	}
	return env
}

// MemberNames returns team member names in stable sorted order.
func (f *File) MemberNames() []string {
	names := make([]string, 0, len(f.Team))
	for name := range f.Team {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Recipients returns the public keys of all current team members,
// ordered by member name.
func (f *File) Recipients() []string {
	names := f.MemberNames()
	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, f.Team[name].Pubkey)
	}
	return keys
}

// MemberForPubkey finds the team member, if any, whose recorded public
// key matches pubkey. Used to resolve the caller's own team entry.
func (f *File) MemberForPubkey(pubkey string) (string, TeamMember, bool) {
	for _, name := range f.MemberNames() {
		member := f.Team[name]
		if member.Pubkey == pubkey {
			return name, member, true
		}
	}
	return "", TeamMember{}, false
}
