package cli

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/integrityforge/internal/errors"
)

// TestRootCommand_Help tests that the bare command prints help
func TestRootCommand_Help(t *testing.T) {
	out, err := runCommand(t)

	require.NoError(t, err)
	assert.Contains(t, out, "integrityforge")
	assert.Contains(t, out, "hash")
	assert.Contains(t, out, "validate")
	assert.Contains(t, out, "attest")
	assert.Contains(t, out, "verify")
	assert.Contains(t, out, "config")
}

// TestRootCommand_InvalidOutputFormat tests output format pre-flight
func TestRootCommand_InvalidOutputFormat(t *testing.T) {
	_, err := runCommand(t, "--output", "xml", "hash", "x")

	require.ErrorIs(t, err, errors.ErrInvalidOutputFormat)
	assert.Equal(t, 3, ExitCodeForError(err))
}

// TestRootCommand_UnknownCommand tests unknown subcommand handling
func TestRootCommand_UnknownCommand(t *testing.T) {
	_, err := runCommand(t, "frobnicate")

	require.Error(t, err)
	assert.True(t, IsUsageError(err))
	assert.Equal(t, 2, ExitCodeForError(err))
}

// TestFormatVersion tests version string assembly
func TestFormatVersion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "dev (commit: none, built: unknown)", formatVersion(BuildInfo{}))
	assert.Equal(t, "1.2.3 (commit: abc123, built: 2026-08-23)",
		formatVersion(BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-08-23"}))
}

// TestRootCommand_VerboseQuietExclusive tests the flag group
func TestRootCommand_VerboseQuietExclusive(t *testing.T) {
	_, err := runCommand(t, "--verbose", "--quiet", "config", "show")

	require.Error(t, err)
	assert.True(t, IsUsageError(err))
}

// TestRootCommand_ErrorsSilenced tests that cobra does not duplicate error
// reporting into command output
func TestRootCommand_ErrorsSilenced(t *testing.T) {
	out, err := runCommand(t, "hash", "/nonexistent/absent.bin")

	require.Error(t, err)
	assert.NotContains(t, out, "Error:", "errors are reported once, by Execute, not by cobra")
}

// TestReportError tests the one-shot error reporting path
func TestReportError(t *testing.T) {
	t.Parallel()

	t.Run("usage error keeps cobra wording", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		reportError(&buf, stderrors.New("unknown flag: --bogus"))

		assert.Contains(t, buf.String(), "unknown flag: --bogus")
		assert.Contains(t, buf.String(), "--help")
	})

	t.Run("sentinel error gets message and action", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		reportError(&buf, errors.Wrap(errors.ErrDigestMismatch, "a.txt"))

		assert.Contains(t, buf.String(), "does not match the expected digest")
		assert.Contains(t, buf.String(), "Re-download or restore the file")
	})

	t.Run("exit error unwraps to its sentinel", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		reportError(&buf, &ExitError{Code: 1, Err: errors.Wrap(errors.ErrValidationFailed, "2 of 3")})

		assert.Contains(t, buf.String(), "failed integrity validation")
	})

	t.Run("unknown error falls back to its own message", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		reportError(&buf, stderrors.New("boom"))

		assert.Equal(t, "Error: boom\n", buf.String())
	})
}
