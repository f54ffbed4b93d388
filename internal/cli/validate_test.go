package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/integrityforge/internal/manifest"
)

// writeManifest writes manifest lines next to the listed files.
func writeManifest(t *testing.T, dir string, lines ...string) string {
	t.Helper()

	path := filepath.Join(dir, "checksums.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))
	return path
}

// TestValidateCommand_AllPass tests exit 0 when every entry matches
func TestValidateCommand_AllPass(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(file, []byte("test data\n"), 0o600))
	manifestPath := writeManifest(t, dir, testDataDigest+"  "+file)

	out, err := runCommand(t, "validate", manifestPath)

	require.NoError(t, err)
	assert.Contains(t, out, "1 passed")
}

// TestValidateCommand_Mismatch tests exit 1 on a digest mismatch
func TestValidateCommand_Mismatch(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(file, []byte("tampered\n"), 0o600))
	manifestPath := writeManifest(t, dir, testDataDigest+"  "+file)

	out, err := runCommand(t, "validate", manifestPath)

	require.Error(t, err)
	assert.Equal(t, 1, ExitCodeForError(err))
	assert.Contains(t, out, "✗ "+file)
}

// TestValidateCommand_MissingFile tests exit 2 on an unreadable file
func TestValidateCommand_MissingFile(t *testing.T) {
	dir := t.TempDir()
	manifestPath := writeManifest(t, dir, testDataDigest+"  "+filepath.Join(dir, "absent.txt"))

	_, err := runCommand(t, "validate", manifestPath)

	require.Error(t, err)
	assert.Equal(t, 2, ExitCodeForError(err), "errored takes precedence over failed")
}

// TestValidateCommand_MixedResults tests independence of entries
func TestValidateCommand_MixedResults(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(good, []byte("test data\n"), 0o600))
	require.NoError(t, os.WriteFile(bad, []byte("altered\n"), 0o600))
	manifestPath := writeManifest(t, dir,
		testDataDigest+"  "+good,
		testDataDigest+"  "+bad,
	)

	out, err := runCommand(t, "--output", "json", "validate", manifestPath)

	require.Error(t, err)
	assert.Equal(t, 1, ExitCodeForError(err))

	var summary manifest.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Results, 2)
	assert.Equal(t, manifest.StatusPassed, summary.Results[0].Status)
	assert.Equal(t, manifest.StatusFailed, summary.Results[1].Status)
}

// TestValidateCommand_ParseErrors tests exit 1 on malformed manifest lines
func TestValidateCommand_ParseErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(file, []byte("test data\n"), 0o600))
	manifestPath := writeManifest(t, dir,
		testDataDigest+"  "+file,
		"not-a-valid-line",
	)

	_, err := runCommand(t, "validate", manifestPath)

	require.Error(t, err)
	assert.Equal(t, 1, ExitCodeForError(err))
}

// TestValidateCommand_MissingManifest tests exit 2 on a missing manifest
func TestValidateCommand_MissingManifest(t *testing.T) {
	_, err := runCommand(t, "validate", filepath.Join(t.TempDir(), "absent.txt"))

	require.Error(t, err)
	assert.Equal(t, 2, ExitCodeForError(err))
}

// TestValidateCommand_AlgorithmDirective tests the in-manifest directive
func TestValidateCommand_AlgorithmDirective(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(file, []byte("test data\n"), 0o600))

	// Hash with blake3, then validate the emitted manifest.
	manifestPath := filepath.Join(dir, "checksums.txt")
	_, err := runWithHome(t, t.TempDir(), "hash", "--algorithm", "blake3", "--output-file", manifestPath, file)
	require.NoError(t, err)

	out, err := runWithHome(t, t.TempDir(), "validate", manifestPath)
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed")
}
