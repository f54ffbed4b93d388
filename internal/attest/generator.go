package attest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/integrityforge/internal/clock"
	"github.com/mrz1836/integrityforge/internal/constants"
	"github.com/mrz1836/integrityforge/internal/crypto"
	"github.com/mrz1836/integrityforge/internal/ctxutil"
	"github.com/mrz1836/integrityforge/internal/digest"
	"github.com/mrz1836/integrityforge/internal/errors"
	"github.com/mrz1836/integrityforge/internal/flock"
)

// Generator produces attestation records. The signer is an injected
// capability; a nil signer yields unsigned records.
type Generator struct {
	engine *digest.Engine
	signer crypto.Signer
	clk    clock.Clock
}

// NewGenerator creates a Generator. clk may be nil, in which case the
// system clock is used.
func NewGenerator(engine *digest.Engine, signer crypto.Signer, clk clock.Clock) *Generator {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Generator{engine: engine, signer: signer, clk: clk}
}

// Generate hashes the file and builds a timestamped record for it, signing
// the canonical payload when a signer is available.
func (g *Generator) Generate(ctx context.Context, path string, algo digest.Algorithm, metadata map[string]string) (Record, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return Record{}, err
	}

	d, err := g.engine.ComputeFile(ctx, path, algo)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		ID:        uuid.NewString(),
		Path:      path,
		Size:      d.Bytes,
		Algorithm: d.Algorithm,
		Digest:    d.Hex,
		Timestamp: g.clk.Now().UTC().Truncate(time.Second),
		Attestor:  constants.AttestorName,
		Metadata:  metadata,
	}

	if g.signer != nil {
		payload, payloadErr := rec.CanonicalPayload()
		if payloadErr != nil {
			return Record{}, payloadErr
		}
		sig, signErr := g.signer.Sign(ctx, payload)
		if signErr != nil {
			return Record{}, errors.Wrap(signErr, "signing attestation")
		}
		rec.Signature = base64.StdEncoding.EncodeToString(sig)
	}

	zerolog.Ctx(ctx).Info().
		Str("path", path).
		Str("algorithm", string(rec.Algorithm)).
		Str("record_id", rec.ID).
		Bool("signed", rec.Signature != "").
		Msg("attestation generated")

	return rec, nil
}

// AppendRecords appends records to an attestation file as JSON lines, one
// independent record per line. The file is opened append-only and is never
// rewritten in place: existing records are immutable history. An exclusive
// lock on the file serializes concurrent writers so records never
// interleave mid-line.
func AppendRecords(path string, records []Record) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) //nolint:gosec // G304: output path is user-chosen
	if err != nil {
		return errors.Wrapf(errors.ErrIO, "opening attestation file %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := flock.ExclusiveWait(f.Fd()); err != nil {
		return errors.Wrapf(errors.ErrIO, "locking attestation file %s: %v", path, err)
	}
	defer func() { _ = flock.Unlock(f.Fd()) }()

	enc := json.NewEncoder(f)
	for _, rec := range records {
		if encErr := enc.Encode(rec); encErr != nil {
			return errors.Wrapf(errors.ErrIO, "writing attestation: %v", encErr)
		}
	}
	return nil
}

// ReadRecords reads attestation records from r. Both JSON-lines streams and
// single pretty-printed objects or arrays decode correctly, since the
// decoder consumes consecutive top-level JSON values.
func ReadRecords(r io.Reader) ([]Record, error) {
	var records []Record
	dec := json.NewDecoder(r)
	for dec.More() {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Wrapf(errors.ErrAttestationMalformed, "%v", err)
		}

		// A top-level value is either one record or an array of records.
		var rec Record
		if err := json.Unmarshal(raw, &rec); err == nil {
			records = append(records, rec)
			continue
		}
		var batch []Record
		if err := json.Unmarshal(raw, &batch); err != nil {
			return nil, errors.Wrapf(errors.ErrAttestationMalformed, "%v", err)
		}
		records = append(records, batch...)
	}
	if len(records) == 0 {
		return nil, errors.Wrap(errors.ErrAttestationMalformed, "no records found")
	}
	return records, nil
}
