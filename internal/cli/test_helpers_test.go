package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// runWithHome executes the CLI with HOME and INTEGRITYFORGE_HOME pointed at
// the given directory so tests never touch the real user home.
func runWithHome(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", home)
	t.Setenv("INTEGRITYFORGE_HOME", home)
	t.Setenv("NO_COLOR", "1")

	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, BuildInfo{})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// runCommand executes the CLI in a throwaway home directory.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runWithHome(t, t.TempDir(), args...)
}

// writeTempFile writes content to a file in a temp dir and returns its path.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// testDataDigest is the sha256 of "test data\n".
const testDataDigest = "0c15e883dee85bb2f3540a47ec58f617a2547117f9096417ba5422268029f501"
