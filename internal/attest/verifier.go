package attest

import (
	"context"
	"encoding/base64"
	"os"

	"github.com/rs/zerolog"

	"github.com/mrz1836/integrityforge/internal/crypto"
	"github.com/mrz1836/integrityforge/internal/digest"
	"github.com/mrz1836/integrityforge/internal/errors"
)

// Verifier checks attestation records. Signature verification is delegated
// to the injected capability; digest recomputation goes through the engine.
type Verifier struct {
	engine           *digest.Engine
	verifier         crypto.Verifier
	requireSignature bool
}

// NewVerifier creates a Verifier. verifier may be nil when only unsigned
// records are expected.
func NewVerifier(engine *digest.Engine, verifier crypto.Verifier, requireSignature bool) *Verifier {
	return &Verifier{engine: engine, verifier: verifier, requireSignature: requireSignature}
}

// Verify checks a record. overridePath, when non-empty, replaces the path
// stored in the record for the content check.
//
// A signed record is checked against its canonical payload; a failure is
// ErrSignatureInvalid, reported distinctly from a digest mismatch so
// operators can tell "file changed" from "attestation tampered". An
// unsigned record is rejected with ErrSignatureRequired when signatures are
// mandated. In every case the file's digest is recomputed and compared when
// the file is still locally accessible; a signed record whose file is gone
// verifies on the signature alone.
func (v *Verifier) Verify(ctx context.Context, rec Record, overridePath string) error {
	log := zerolog.Ctx(ctx)

	if err := rec.validate(); err != nil {
		return err
	}

	signed := rec.Signature != ""
	if signed {
		if err := v.verifySignature(ctx, rec); err != nil {
			return err
		}
	} else if v.requireSignature {
		return errors.Wrapf(errors.ErrSignatureRequired, "record %s is unsigned", rec.ID)
	}

	path := rec.Path
	if overridePath != "" {
		path = overridePath
	}

	if _, err := os.Stat(path); err != nil {
		if signed {
			// File no longer present locally; the signature vouches for
			// the record itself.
			log.Warn().Str("path", path).Msg("attested file not accessible, verified signature only")
			return nil
		}
		return errors.Wrapf(errors.ErrIO, "stat %s: %v", path, err)
	}

	observed, err := v.engine.ComputeFile(ctx, path, rec.Algorithm)
	if err != nil {
		return err
	}
	if !digest.EqualHex(rec.Digest, observed.Hex) {
		return errors.Wrapf(errors.ErrDigestMismatch,
			"%s: expected %s, observed %s", path, rec.Digest, observed.Hex)
	}

	log.Info().Str("path", path).Str("record_id", rec.ID).Bool("signed", signed).Msg("attestation verified")
	return nil
}

// verifySignature recomputes the canonical payload and checks the detached
// signature against it.
func (v *Verifier) verifySignature(ctx context.Context, rec Record) error {
	if v.verifier == nil {
		return errors.Wrap(errors.ErrSignerUnavailable, "record is signed but no verifier is configured")
	}

	sig, err := base64.StdEncoding.DecodeString(rec.Signature)
	if err != nil {
		return errors.Wrapf(errors.ErrAttestationMalformed, "signature is not valid base64: %v", err)
	}

	payload, err := rec.CanonicalPayload()
	if err != nil {
		return err
	}

	if err := v.verifier.Verify(ctx, payload, sig); err != nil {
		return errors.Wrapf(errors.ErrSignatureInvalid, "record %s: %v", rec.ID, err)
	}
	return nil
}
