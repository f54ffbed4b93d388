// Package attest implements the signed attestation record lifecycle:
// generating records that assert a digest was computed for a file at a
// point in time, appending them to attestation files, and verifying them
// later.
//
// Records are append-only. A record is never edited in place; a changed
// file gets a new record that supersedes the old one.
package attest

import (
	"encoding/json"
	"time"

	"github.com/mrz1836/integrityforge/internal/digest"
	"github.com/mrz1836/integrityforge/internal/errors"
)

// Record asserts that a specific digest was computed for a specific file at
// a specific time. The timestamp is wall-clock UTC for display and audit
// only; it is never used for security decisions.
type Record struct {
	// ID uniquely identifies the record.
	ID string `json:"id"`

	// Path is the attested file path as given at generation time.
	Path string `json:"path"`

	// Size is the file size in bytes at generation time.
	Size int64 `json:"size"`

	// Algorithm is the digest algorithm.
	Algorithm digest.Algorithm `json:"algorithm"`

	// Digest is the lowercase hex digest of the file content.
	Digest string `json:"digest"`

	// Timestamp is the UTC generation time, truncated to seconds so the
	// canonical serialization is stable across JSON round trips.
	Timestamp time.Time `json:"timestamp"`

	// Signature is the base64-encoded detached signature over the
	// canonical payload. Empty for unsigned records.
	Signature string `json:"signature,omitempty"`

	// Attestor identifies the generating tool and version.
	Attestor string `json:"attestor"`

	// Metadata carries caller-supplied string key/value pairs. It is part
	// of the signed payload.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// CanonicalPayload returns the byte sequence signatures are computed over:
// the JSON encoding of {algorithm, digest, metadata, path, timestamp} with
// sorted keys, UTF-8, and no trailing whitespace. Empty metadata is omitted
// so present-and-empty and absent metadata canonicalize identically.
func (r Record) CanonicalPayload() ([]byte, error) {
	payload := map[string]any{
		"algorithm": string(r.Algorithm),
		"digest":    r.Digest,
		"path":      r.Path,
		"timestamp": r.Timestamp.UTC().Format(time.RFC3339),
	}
	if len(r.Metadata) > 0 {
		payload["metadata"] = r.Metadata
	}

	// encoding/json sorts map keys and emits no trailing whitespace.
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "canonicalizing attestation payload")
	}
	return data, nil
}

// validate checks the fields every record must carry.
func (r Record) validate() error {
	switch {
	case r.Path == "":
		return errors.Wrap(errors.ErrAttestationMalformed, "missing path")
	case r.Digest == "":
		return errors.Wrap(errors.ErrAttestationMalformed, "missing digest")
	case r.Algorithm == "":
		return errors.Wrap(errors.ErrAttestationMalformed, "missing algorithm")
	case r.Timestamp.IsZero():
		return errors.Wrap(errors.ErrAttestationMalformed, "missing timestamp")
	default:
		return nil
	}
}
