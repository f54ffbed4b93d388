// Package crypto provides cryptographic interfaces for integrityforge.
// This package defines capabilities that can be implemented by different
// signing backends; key material and algorithm choice are owned by the
// backend, never by the attestation core.
package crypto

import "context"

// Signer provides signing capabilities over attestation payloads.
// Implementations must be deterministic with respect to verification:
// a signature produced by Sign must always verify against the same message.
type Signer interface {
	// Sign signs the given message and returns the signature.
	// Returns error if signing fails.
	Sign(ctx context.Context, message []byte) ([]byte, error)

	// Verify checks that a signature is valid for the given message.
	// Returns nil if valid, error if invalid or verification fails.
	Verify(ctx context.Context, message, signature []byte) error
}

// Verifier provides signature verification capabilities.
// This is a read-only subset of Signer for consumers that only need to verify.
type Verifier interface {
	// Verify checks that a signature is valid for the given message.
	// Returns nil if valid, error if invalid or verification fails.
	Verify(ctx context.Context, message, signature []byte) error
}
