// Package digest provides streaming digest computation and timing-safe
// digest comparison for file integrity validation.
//
// Computation is a pure function of byte content and algorithm: the same
// bytes produce the same digest on any platform at any chunk size. Input is
// consumed in fixed-size chunks and never materialized whole, so arbitrarily
// large files and piped input are supported in bounded memory.
package digest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"

	"github.com/mrz1836/integrityforge/internal/constants"
	"github.com/mrz1836/integrityforge/internal/errors"
)

// Algorithm identifies a supported digest algorithm.
type Algorithm string

// Supported digest algorithms. All produce 256-bit digests (64 hex characters).
const (
	// SHA256 is the default algorithm.
	SHA256 Algorithm = "sha256"

	// SHA3256 is the SHA-3 256-bit variant.
	SHA3256 Algorithm = "sha3-256"

	// BLAKE3 is the BLAKE3 algorithm at its default 256-bit output.
	BLAKE3 Algorithm = "blake3"
)

// HexLength is the hex-encoded length of every supported digest.
const HexLength = 64

// ParseAlgorithm parses a case-insensitive algorithm name.
// Returns ErrUnsupportedAlgorithm for unknown names.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(name))) {
	case SHA256:
		return SHA256, nil
	case SHA3256:
		return SHA3256, nil
	case BLAKE3:
		return BLAKE3, nil
	default:
		return "", errors.Wrapf(errors.ErrUnsupportedAlgorithm, "%q", name)
	}
}

// newHash returns a fresh incremental hash state for the algorithm.
func newHash(algo Algorithm) (hash.Hash, error) {
	switch algo {
	case SHA256:
		return sha256.New(), nil
	case SHA3256:
		return sha3.New256(), nil
	case BLAKE3:
		return blake3.New(32, nil), nil
	default:
		return nil, errors.Wrapf(errors.ErrUnsupportedAlgorithm, "%q", algo)
	}
}

// Digest is the immutable result of hashing a byte stream.
// Hex is always lowercase; comparisons should go through EqualHex.
type Digest struct {
	Algorithm Algorithm `json:"algorithm"`
	Hex       string    `json:"digest"`
	Bytes     int64     `json:"bytes"`
}

// Engine computes digests with a fixed chunk size against a configured
// algorithm allow-list. An Engine is safe for concurrent use: each Compute
// call owns its own buffer and hash state.
type Engine struct {
	chunkSize int
	allowed   map[Algorithm]struct{}
}

// NewEngine creates a digest engine. A non-positive chunkSize falls back to
// the default. An empty allow-list permits only SHA256.
func NewEngine(chunkSize int, allowed []Algorithm) *Engine {
	if chunkSize <= 0 {
		chunkSize = constants.DefaultChunkSize
	}
	set := make(map[Algorithm]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	if len(set) == 0 {
		set[SHA256] = struct{}{}
	}
	return &Engine{chunkSize: chunkSize, allowed: set}
}

// Allowed reports whether the algorithm is in the engine's allow-list.
func (e *Engine) Allowed(algo Algorithm) bool {
	_, ok := e.allowed[algo]
	return ok
}

// Compute streams r through the algorithm's incremental hash state in
// fixed-size chunks. The context is checked between chunk reads so a
// cancelled run aborts cleanly instead of yielding a partial digest.
func (e *Engine) Compute(ctx context.Context, r io.Reader, algo Algorithm) (Digest, error) {
	if !e.Allowed(algo) {
		return Digest{}, errors.Wrapf(errors.ErrUnsupportedAlgorithm, "%q is not in the allow-list", algo)
	}

	h, err := newHash(algo)
	if err != nil {
		return Digest{}, err
	}

	buf := make([]byte, e.chunkSize)
	var total int64
	for {
		select {
		case <-ctx.Done():
			return Digest{}, ctx.Err()
		default:
		}

		n, readErr := r.Read(buf)
		if n > 0 {
			// hash.Hash.Write never returns an error.
			_, _ = h.Write(buf[:n])
			total += int64(n)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return Digest{}, errors.Wrap(errors.ErrIO, readErr.Error())
		}
	}

	d := Digest{
		Algorithm: algo,
		Hex:       hex.EncodeToString(h.Sum(nil)),
		Bytes:     total,
	}

	zerolog.Ctx(ctx).Debug().
		Str("algorithm", string(algo)).
		Int64("bytes", total).
		Str("digest", d.Hex).
		Msg("digest computed")

	return d, nil
}

// ComputeFile opens path and streams it through Compute. The path must be a
// regular file; directories and special files are rejected before any read.
func (e *Engine) ComputeFile(ctx context.Context, path string, algo Algorithm) (Digest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Digest{}, errors.Wrapf(errors.ErrIO, "stat %s: %v", path, err)
	}
	if !info.Mode().IsRegular() {
		return Digest{}, errors.Wrapf(errors.ErrNotRegularFile, "%s", path)
	}

	f, err := os.Open(path) //nolint:gosec // G304: path is the user's validation target
	if err != nil {
		return Digest{}, errors.Wrapf(errors.ErrIO, "open %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	return e.Compute(ctx, f, algo)
}
