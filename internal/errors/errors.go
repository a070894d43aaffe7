package errors

import "errors"

// Validation errors indicate malformed input, detected before any
// state-changing work begins.
var (
	// ErrInvalidSecretKey indicates a secret key name outside [A-Z_][A-Z0-9_]*.
	ErrInvalidSecretKey = errors.New("invalid secret key")

	// ErrInvalidPublicKey indicates a string that does not parse as an age public key.
	ErrInvalidPublicKey = errors.New("invalid age public key")

	// ErrInvalidIdentity indicates a string that does not parse as an age identity.
	ErrInvalidIdentity = errors.New("invalid age identity")

	// ErrInvalidRole indicates a role outside admin/member/ci/readonly.
	ErrInvalidRole = errors.New("invalid role")

	// ErrUnsupportedVersion indicates a store version this build does not understand.
	ErrUnsupportedVersion = errors.New("unsupported .envlock version")

	// ErrMalformedStore indicates the store file is not valid YAML.
	ErrMalformedStore = errors.New("invalid .envlock YAML")

	// ErrMalformedCiphertext indicates a stored value that is not valid base64.
	ErrMalformedCiphertext = errors.New("ciphertext is not valid base64")

	// ErrUnsupportedEnvironment indicates an environment name other than default.
	ErrUnsupportedEnvironment = errors.New("only the default environment is supported")
)

// Authorization errors indicate the caller's identity lacks the
// authority for a team-mutating operation.
var (
	// ErrNotTeamMember indicates the caller's public key matches no team member.
	ErrNotTeamMember = errors.New("current identity is not a team member in .envlock")

	// ErrNotAdmin indicates the caller is a member but not an admin.
	ErrNotAdmin = errors.New("current identity is not an admin in .envlock")
)

// State conflict errors indicate a mutation that contradicts the
// current team or secret state. The store is never modified.
var (
	// ErrStoreNotFound indicates there is no .envlock in the working directory.
	ErrStoreNotFound = errors.New("missing .envlock in current directory; run `envlock init` first")

	// ErrStoreExists indicates init --force was attempted over an existing store.
	ErrStoreExists = errors.New(".envlock already exists; remove it before forcing re-initialization")

	// ErrMemberExists indicates an add with a name already in the team.
	ErrMemberExists = errors.New("team member already exists")

	// ErrMemberNotFound indicates a remove/update/role change for an unknown name.
	ErrMemberNotFound = errors.New("team member not found")

	// ErrSecretNotFound indicates a get for a key that was never set.
	ErrSecretNotFound = errors.New("secret key not found")

	// ErrSelfTarget indicates an admin targeting their own entry.
	ErrSelfTarget = errors.New("cannot target your own identity")

	// ErrSamePublicKey indicates an update whose replacement key matches the current one.
	ErrSamePublicKey = errors.New("replacement public key is identical to the current one")

	// ErrSameRole indicates a role change to the role the member already has.
	ErrSameRole = errors.New("member already has that role")

	// ErrNoRecipients indicates an empty team recipient set.
	ErrNoRecipients = errors.New("no team recipients found in .envlock; cannot encrypt")
)

// Cryptographic errors indicate failures inside a well-formed envelope.
var (
	// ErrDecryptFailed indicates the identity matches no recipient stanza,
	// or the envelope is tampered.
	ErrDecryptFailed = errors.New("failed to decrypt envelope with this identity")
)
