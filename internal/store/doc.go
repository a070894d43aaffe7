// Package store holds the .envlock data model and its persistence:
// the team table, the encrypted secret entries, deterministic YAML
// serialization, atomic temp-file-and-rename writes, and the
// cross-process advisory lock that serializes mutating commands.
package store
