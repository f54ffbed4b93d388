package digest

import (
	"bytes"
	"context"
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	iferrors "github.com/mrz1836/integrityforge/internal/errors"
)

// testDataSHA256 is the well-known SHA-256 digest of the bytes "test data\n".
const testDataSHA256 = "0c15e883dee85bb2f3540a47ec58f617a2547117f9096417ba5422268029f501"

// allAlgorithms is the full allow-list used by most tests.
var allAlgorithms = []Algorithm{SHA256, SHA3256, BLAKE3}

// TestParseAlgorithm tests algorithm name parsing
func TestParseAlgorithm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Algorithm
		wantErr bool
	}{
		{"sha256", "sha256", SHA256, false},
		{"uppercase", "SHA256", SHA256, false},
		{"whitespace", " sha3-256 ", SHA3256, false},
		{"blake3", "blake3", BLAKE3, false},
		{"md5 rejected", "md5", "", true},
		{"empty rejected", "", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseAlgorithm(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, iferrors.ErrUnsupportedAlgorithm)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestEngine_Compute_KnownVector tests the fixed SHA-256 digest of "test data\n"
func TestEngine_Compute_KnownVector(t *testing.T) {
	t.Parallel()

	e := NewEngine(0, allAlgorithms)

	d, err := e.Compute(context.Background(), bytes.NewReader([]byte("test data\n")), SHA256)

	require.NoError(t, err)
	assert.Equal(t, testDataSHA256, d.Hex)
	assert.Equal(t, SHA256, d.Algorithm)
	assert.Equal(t, int64(10), d.Bytes)
}

// TestEngine_Compute_ChunkSizeIndependence tests that the digest is identical
// regardless of chunking
func TestEngine_Compute_ChunkSizeIndependence(t *testing.T) {
	t.Parallel()

	data := make([]byte, 100_000)
	_, err := rand.Read(data)
	require.NoError(t, err)

	for _, algo := range allAlgorithms {
		algo := algo
		t.Run(string(algo), func(t *testing.T) {
			t.Parallel()

			var digests []string
			for _, chunkSize := range []int{1, 7, 512, 8192, 1 << 20} {
				e := NewEngine(chunkSize, allAlgorithms)
				d, computeErr := e.Compute(context.Background(), bytes.NewReader(data), algo)
				require.NoError(t, computeErr)
				assert.Len(t, d.Hex, HexLength)
				digests = append(digests, d.Hex)
			}

			for i := 1; i < len(digests); i++ {
				assert.Equal(t, digests[0], digests[i], "chunk size must not affect the digest")
			}
		})
	}
}

// TestEngine_Compute_Determinism tests repeated runs yield identical digests
func TestEngine_Compute_Determinism(t *testing.T) {
	t.Parallel()

	e := NewEngine(0, allAlgorithms)
	data := []byte("the same bytes every time")

	first, err := e.Compute(context.Background(), bytes.NewReader(data), BLAKE3)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, computeErr := e.Compute(context.Background(), bytes.NewReader(data), BLAKE3)
		require.NoError(t, computeErr)
		assert.Equal(t, first.Hex, again.Hex)
	}
}

// TestEngine_Compute_AlgorithmNotAllowed tests allow-list enforcement
func TestEngine_Compute_AlgorithmNotAllowed(t *testing.T) {
	t.Parallel()

	e := NewEngine(0, []Algorithm{SHA256})

	_, err := e.Compute(context.Background(), bytes.NewReader(nil), BLAKE3)

	require.ErrorIs(t, err, iferrors.ErrUnsupportedAlgorithm)
}

// TestEngine_Compute_EmptyInput tests hashing an empty stream
func TestEngine_Compute_EmptyInput(t *testing.T) {
	t.Parallel()

	e := NewEngine(0, allAlgorithms)

	d, err := e.Compute(context.Background(), bytes.NewReader(nil), SHA256)

	require.NoError(t, err)
	// SHA-256 of the empty string.
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", d.Hex)
	assert.Zero(t, d.Bytes)
}

// TestEngine_Compute_Cancelled tests cooperative cancellation between chunks
func TestEngine_Compute_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEngine(0, allAlgorithms)
	_, err := e.Compute(ctx, bytes.NewReader([]byte("data")), SHA256)

	require.ErrorIs(t, err, context.Canceled)
}

// TestEngine_ComputeFile tests hashing a file on disk
func TestEngine_ComputeFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("test data\n"), 0o600))

	e := NewEngine(0, allAlgorithms)
	d, err := e.ComputeFile(context.Background(), path, SHA256)

	require.NoError(t, err)
	assert.Equal(t, testDataSHA256, d.Hex)
}

// TestEngine_ComputeFile_NotFound tests the missing-file error path
func TestEngine_ComputeFile_NotFound(t *testing.T) {
	t.Parallel()

	e := NewEngine(0, allAlgorithms)

	_, err := e.ComputeFile(context.Background(), filepath.Join(t.TempDir(), "missing"), SHA256)

	require.ErrorIs(t, err, iferrors.ErrIO)
}

// TestEngine_ComputeFile_Directory tests rejection of non-regular files
func TestEngine_ComputeFile_Directory(t *testing.T) {
	t.Parallel()

	e := NewEngine(0, allAlgorithms)

	_, err := e.ComputeFile(context.Background(), t.TempDir(), SHA256)

	require.ErrorIs(t, err, iferrors.ErrNotRegularFile)
}

// TestEngine_Compute_AlgorithmsDiffer tests that algorithms produce distinct digests
func TestEngine_Compute_AlgorithmsDiffer(t *testing.T) {
	t.Parallel()

	e := NewEngine(0, allAlgorithms)
	data := []byte("test data\n")

	seen := make(map[string]Algorithm)
	for _, algo := range allAlgorithms {
		d, err := e.Compute(context.Background(), bytes.NewReader(data), algo)
		require.NoError(t, err)
		prev, dup := seen[d.Hex]
		require.False(t, dup, "%s and %s collided", prev, algo)
		seen[d.Hex] = algo
	}
}
