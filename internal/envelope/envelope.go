package envelope

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"filippo.io/age"

	elerrors "github.com/envlock-dev/envlock/internal/errors"
)

// Encrypt seals plaintext to every recipient and returns the envelope
// as standard base64. A fresh file key is generated per call and
// wrapped once per recipient, so any single matching identity can
// decrypt and repeated calls never produce identical ciphertext.
func Encrypt(plaintext string, recipients []*age.X25519Recipient) (string, error) {
	if len(recipients) == 0 {
		return "", elerrors.ErrNoRecipients
	}

	rs := make([]age.Recipient, len(recipients))
	for i, r := range recipients {
		rs[i] = r
	}

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, rs...)
	if err != nil {
		return "", fmt.Errorf("creating envelope: %w", err)
	}
	if _, err := io.WriteString(w, plaintext); err != nil {
		return "", fmt.Errorf("writing envelope payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("sealing envelope: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Decrypt opens a base64 envelope with the given identity.
//
// A base64 decoding failure reports ErrMalformedCiphertext; a failure
// inside the envelope (no matching recipient stanza, or tampering)
// reports ErrDecryptFailed. Callers rely on the distinction.
func Decrypt(encoded string, id *age.X25519Identity) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", elerrors.ErrMalformedCiphertext, err)
	}

	r, err := age.Decrypt(bytes.NewReader(raw), id)
	if err != nil {
		return "", fmt.Errorf("%w: %v", elerrors.ErrDecryptFailed, err)
	}
	plaintext, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", elerrors.ErrDecryptFailed, err)
	}

	return string(plaintext), nil
}

// GenerateKeypair creates a new x25519 identity.
func GenerateKeypair() (*age.X25519Identity, error) {
	id, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("generating x25519 identity: %w", err)
	}
	return id, nil
}

// ParseRecipient parses an age1... public key string.
func ParseRecipient(s string) (*age.X25519Recipient, error) {
	r, err := age.ParseX25519Recipient(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", elerrors.ErrInvalidPublicKey, err)
	}
	return r, nil
}

// ParseIdentity parses an AGE-SECRET-KEY-... private key string.
func ParseIdentity(s string) (*age.X25519Identity, error) {
	id, err := age.ParseX25519Identity(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", elerrors.ErrInvalidIdentity, err)
	}
	return id, nil
}
