package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWrap_NilError tests that wrapping nil returns nil
func TestWrap_NilError(t *testing.T) {
	t.Parallel()

	require.NoError(t, Wrap(nil, "context"))
	require.NoError(t, Wrapf(nil, "context %d", 42))
}

// TestWrap_PreservesChain tests that errors.Is works through Wrap
func TestWrap_PreservesChain(t *testing.T) {
	t.Parallel()

	err := Wrap(ErrDigestMismatch, "validating file.txt")

	require.Error(t, err)
	require.ErrorIs(t, err, ErrDigestMismatch)
	assert.Equal(t, "validating file.txt: digest mismatch", err.Error())
}

// TestWrapf_FormatsMessage tests formatted wrapping
func TestWrapf_FormatsMessage(t *testing.T) {
	t.Parallel()

	err := Wrapf(ErrManifestParse, "line %d", 7)

	require.ErrorIs(t, err, ErrManifestParse)
	assert.Equal(t, "line 7: manifest parse error", err.Error())
}

// TestUserMessage_KnownSentinels tests that sentinels map to friendly messages
func TestUserMessage_KnownSentinels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{"digest mismatch", ErrDigestMismatch},
		{"signature invalid", ErrSignatureInvalid},
		{"config invalid", ErrConfigInvalid},
		{"unsupported algorithm", ErrUnsupportedAlgorithm},
		{"io", ErrIO},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg := UserMessage(tt.err)
			assert.NotEmpty(t, msg)
			assert.NotEqual(t, tt.err.Error(), msg, "should be a friendlier message than the raw error")
		})
	}
}

// TestUserMessage_WrappedError tests lookup through a wrapped chain
func TestUserMessage_WrappedError(t *testing.T) {
	t.Parallel()

	err := Wrap(ErrSignatureInvalid, "verifying record abc")

	msg, action := Actionable(err)
	assert.Contains(t, msg, "signature")
	assert.NotEmpty(t, action)
}

// TestUserMessage_UnknownError tests fallback to the raw message
func TestUserMessage_UnknownError(t *testing.T) {
	t.Parallel()

	err := stderrors.New("something odd")
	assert.Equal(t, "something odd", UserMessage(err))
}

// TestUserMessage_Nil tests nil handling
func TestUserMessage_Nil(t *testing.T) {
	t.Parallel()

	assert.Empty(t, UserMessage(nil))

	msg, action := Actionable(nil)
	assert.Empty(t, msg)
	assert.Empty(t, action)
}
