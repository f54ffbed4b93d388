package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper functions construct fake secret strings at runtime to avoid
// gitleaks false positives. These use obvious test/example patterns.
func fakeHexKey() string        { return "private_key=" + strings.Repeat("ab", 32) }
func fakeSigningKey() string    { return "signing-key: " + strings.Repeat("0f", 40) }
func fakeGitHubPAT() string     { return "ghp_" + "xxxxxxxxxxTESTONLYxxxxxxxxxx" }
func fakeGitHubOAuth() string   { return "gho_" + "xxxxxxxxxxTESTONLYxxxxxxxxxx" }
func fakeBearerToken() string   { return "Bearer " + "TESTONLYtoken1234567890abc" }
func fakePassphrase() string    { return "passphrase=" + "testonly-passphrase-123" }
func fakeSecret() string        { return "secret=" + "testonlysecretvalue456" }
func fakePGPBlock() string      { return "-----BEGIN PGP " + "PRIVATE KEY BLOCK-----" }
func fakePEMBlock() string      { return "-----BEGIN " + "OPENSSH PRIVATE KEY-----" }
func fakeBase64Token() string   { return "token=" + strings.Repeat("QWJj", 10) }

// TestContainsSensitiveData_KeyMaterial tests key-material detection
func TestContainsSensitiveData_KeyMaterial(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"hex private key", "loaded " + fakeHexKey(), true},
		{"hex signing key", fakeSigningKey(), true},
		{"pgp private key block", fakePGPBlock(), true},
		{"pem private key block", fakePEMBlock(), true},
		{"passphrase assignment", fakePassphrase(), true},
		{"plain digest is not sensitive", "digest=" + strings.Repeat("ab", 32), false},
		{"normal message", "validated 12 entries", false},
		{"short hex value", "private_key=abcd", false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ContainsSensitiveData(tc.input))
		})
	}
}

// TestContainsSensitiveData_Tokens tests credential-format detection
func TestContainsSensitiveData_Tokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"github personal access token", "token: " + fakeGitHubPAT(), true},
		{"github oauth token", fakeGitHubOAuth(), true},
		{"bearer token", "header " + fakeBearerToken(), true},
		{"generic secret", fakeSecret(), true},
		{"base64 token", fakeBase64Token(), true},
		{"plain path", "/home/user/.integrityforge/keys", false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ContainsSensitiveData(tc.input))
		})
	}
}

// TestFilterSensitiveValue tests in-place redaction
func TestFilterSensitiveValue(t *testing.T) {
	t.Parallel()

	filtered := FilterSensitiveValue("run with " + fakeHexKey() + " done")
	assert.Contains(t, filtered, RedactedValue)
	assert.NotContains(t, filtered, strings.Repeat("ab", 32))

	unchanged := FilterSensitiveValue("validated dist/app.tar.gz")
	assert.Equal(t, "validated dist/app.tar.gz", unchanged)
}

// TestIsSensitiveFieldName tests field-name matching
func TestIsSensitiveFieldName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		field    string
		expected bool
	}{
		{"private_key", true},
		{"PRIVATE_KEY", true},
		{"signing_key", true},
		{"passphrase", true},
		{"github_token", true},
		{"path", false},
		{"algorithm", false},
		{"digest", false},
		{"signature", false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.field, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, IsSensitiveFieldName(tc.field))
		})
	}
}

// TestRedactIfSensitive tests the call-site helper
func TestRedactIfSensitive(t *testing.T) {
	t.Parallel()

	assert.Equal(t, RedactedValue, RedactIfSensitive("private_key", "anything"))
	assert.Equal(t, "dist/app.tar.gz", RedactIfSensitive("path", "dist/app.tar.gz"))
	assert.Equal(t, RedactedValue, SafeValue("passphrase", "hunter2hunter2"))
}

// TestSensitiveDataHook tests the message-flagging hook
func TestSensitiveDataHook(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(NewSensitiveDataHook())

	logger.Info().Msg("loaded " + fakePassphrase())
	assert.Contains(t, buf.String(), `"contains_filtered_data":true`)

	buf.Reset()
	logger.Info().Msg("validated 3 files")
	assert.NotContains(t, buf.String(), "contains_filtered_data")
}

// TestFilteringWriter tests redaction on the way to disk
func TestFilteringWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	fw := NewFilteringWriter(&buf)

	input := []byte("msg=" + fakeSigningKey())
	n, err := fw.Write(input)
	require.NoError(t, err)

	assert.Equal(t, len(input), n, "reports original length")
	assert.Contains(t, buf.String(), RedactedValue)
	assert.NotContains(t, buf.String(), strings.Repeat("0f", 40))
}
