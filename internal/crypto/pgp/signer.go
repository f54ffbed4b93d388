// Package pgp provides OpenPGP detached-signature signing and verification
// using ProtonMail's go-crypto, a maintained fork of golang.org/x/crypto/openpgp.
package pgp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

var (
	// ErrNoSigningKey is returned when the loaded keyring contains no private key.
	ErrNoSigningKey = errors.New("keyring contains no private key")

	// ErrNoKeys is returned when a keyring file contains no keys at all.
	ErrNoKeys = errors.New("no keys found in keyring")

	// ErrInvalidSignature is returned when signature verification fails.
	ErrInvalidSignature = errors.New("invalid signature")
)

// Signer implements the crypto.Signer interface with OpenPGP detached
// signatures. The keyring is used for verification; the first entity
// carrying a private key is used for signing.
type Signer struct {
	entity  *openpgp.Entity
	keyring openpgp.EntityList
}

// LoadSigner reads a keyring file (armored or binary) and returns a Signer.
// Signing requires a private key in the ring; a ring with only public keys
// still yields a Signer usable for verification.
func LoadSigner(keyringPath string) (*Signer, error) {
	keyring, err := readKeyring(keyringPath)
	if err != nil {
		return nil, err
	}

	s := &Signer{keyring: keyring}
	for _, entity := range keyring {
		if entity.PrivateKey != nil {
			s.entity = entity
			break
		}
	}
	return s, nil
}

// NewSigner wraps an in-memory entity, primarily for tests.
func NewSigner(entity *openpgp.Entity) *Signer {
	return &Signer{entity: entity, keyring: openpgp.EntityList{entity}}
}

// readKeyring reads an armored keyring, falling back to binary format.
func readKeyring(path string) (openpgp.EntityList, error) {
	f, err := os.Open(path) //nolint:gosec // G304: keyring path is operator-provided
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	defer func() { _ = f.Close() }()

	keyring, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		if _, seekErr := f.Seek(0, 0); seekErr != nil {
			return nil, fmt.Errorf("rewinding keyring: %w", seekErr)
		}
		keyring, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return nil, fmt.Errorf("reading keyring: %w", err)
		}
	}
	if len(keyring) == 0 {
		return nil, ErrNoKeys
	}
	return keyring, nil
}

// Sign produces a binary detached signature over the message.
func (s *Signer) Sign(_ context.Context, message []byte) ([]byte, error) {
	if s.entity == nil || s.entity.PrivateKey == nil {
		return nil, ErrNoSigningKey
	}

	var buf bytes.Buffer
	if err := openpgp.DetachSign(&buf, s.entity, bytes.NewReader(message), nil); err != nil {
		return nil, fmt.Errorf("detach-signing: %w", err)
	}
	return buf.Bytes(), nil
}

// Verify checks a detached signature against the message using the keyring.
func (s *Signer) Verify(_ context.Context, message, signature []byte) error {
	_, err := openpgp.CheckDetachedSignature(s.keyring, bytes.NewReader(message), bytes.NewReader(signature), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return nil
}
