// Package envelope wraps filippo.io/age for the operations envlock
// needs: generate x25519 keypairs, encrypt a value to multiple
// recipients, and decrypt with a private key. Ciphertext is
// base64-encoded for storage inside the .envlock YAML document.
package envelope
