package workflows

import (
	"context"

	"github.com/envlock-dev/envlock/internal/store"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	StorePath string
	Env       string
}

// ListEntry is one row of secret metadata. Values stay encrypted.
type ListEntry struct {
	Env      string
	Key      string
	SetBy    string
	Modified string
}

// ListResult contains secret metadata rows sorted by key.
type ListResult struct {
	Entries []ListEntry
}

// List returns metadata for every secret in the environment. No
// decryption happens, so no identity is needed.
func List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if err := requireDefaultEnv(opts.Env); err != nil {
		return nil, err
	}

	f, err := store.Read(opts.StorePath)
	if err != nil {
		return nil, err
	}

	result := &ListResult{}
	env, ok := f.DefaultEnv()
	if !ok {
		return result, nil
	}
	for _, key := range sortedKeys(env) {
		entry := env[key]
		result.Entries = append(result.Entries, ListEntry{
			Env:      store.DefaultEnvName,
			Key:      key,
			SetBy:    entry.SetBy,
			Modified: entry.Modified,
		})
	}
	return result, nil
}
