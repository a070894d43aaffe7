package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	elerrors "github.com/envlock-dev/envlock/internal/errors"
)

// Path returns the store path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// LockPath returns the sibling lock file path for a store path.
func LockPath(path string) string {
	return path + ".lock"
}

// Read parses the store file. The version gate runs before anything
// else is interpreted; an unsupported version is a hard error.
func Read(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, elerrors.ErrStoreNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w in %s: %v", elerrors.ErrMalformedStore, path, err)
	}
	if err := f.EnsureSupportedVersion(); err != nil {
		return nil, err
	}

	if f.Team == nil {
		f.Team = make(map[string]TeamMember)
	}
	if f.Environments == nil {
		f.Environments = make(map[string]map[string]SecretEntry)
	}
	return &f, nil
}

// WriteAtomic serializes the complete snapshot to a uniquely named
// temporary file in the store's directory, then renames it over the
// real path. Readers never observe a partial write. A crash between
// the temporary write and the rename leaves an orphan .envlock.tmp.*
// file behind; it is not cleaned up automatically.
func WriteAtomic(path string, f *File) error {
	out, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("serializing %s: %w", FileName, err)
	}

	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf("%s.tmp.%s", FileName, uuid.NewString()))
	if err := os.WriteFile(tmp, out, 0600); err != nil {
		return fmt.Errorf("writing temporary file %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing %s atomically: %w", path, err)
	}
	return nil
}

// WithLock runs action while holding an exclusive advisory lock on the
// store's sibling lock file, serializing concurrent envlock processes
// so a whole read-mutate-persist sequence cannot interleave with
// another. The lock is released on every exit path.
//
// Acquisition blocks indefinitely. A holder that crashes without
// exiting (rather than being killed, which releases OS-level locks)
// stalls all other invocations; this is a known limitation.
func WithLock(path string, action func() error) error {
	lockPath := LockPath(path)
	lock := flock.New(lockPath)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquiring lock %s: %w", lockPath, err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	return action()
}
