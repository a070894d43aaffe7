package audit

import (
	"encoding/json"
	"os"
	"time"
)

// Suffix is appended to the store path to form the audit log path.
const Suffix = ".audit.jsonl"

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // Team name of the acting identity.
	Operation string `json:"op"`   // Operation name.

	// Optional fields depending on operation.
	Environment string `json:"env,omitempty"`         // For set/get.
	Key         string `json:"key,omitempty"`         // For set.
	Target      string `json:"target,omitempty"`      // For member operations.
	Role        string `json:"role,omitempty"`        // For member add/role.
	Recipients  int    `json:"recipients,omitempty"`  // Recipient count after the operation.
	Reencrypted int    `json:"reencrypted,omitempty"` // Secrets re-encrypted.
}

// Log appends an entry to the audit log beside the store.
// If logging fails, the operation is not failed on its account;
// the audit trail is best effort.
func Log(storePath string, entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	// #nosec G306 -- the audit log should be readable by team members.
	f, err := os.OpenFile(storePath+Suffix, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = f.Write(append(data, '\n'))
}
