// Package identity resolves, loads, and generates the user's age
// identity file. The engine only ever sees a Bundle; path resolution
// and file permissions live here.
package identity
