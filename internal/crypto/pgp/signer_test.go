package pgp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/stretchr/testify/require"
)

// newTestEntity generates a throwaway OpenPGP identity.
func newTestEntity(t *testing.T) *openpgp.Entity {
	t.Helper()

	entity, err := openpgp.NewEntity("integrityforge-test", "", "test@example.com", nil)
	require.NoError(t, err)
	return entity
}

// TestSigner_SignVerify tests the detached signature round trip
func TestSigner_SignVerify(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewSigner(newTestEntity(t))

	msg := []byte(`{"algorithm":"sha256","path":"a.txt"}`)
	sig, err := s.Sign(ctx, msg)
	require.NoError(t, err)
	require.NotEmpty(t, sig)

	require.NoError(t, s.Verify(ctx, msg, sig))
}

// TestSigner_Verify_Tampered tests tamper detection
func TestSigner_Verify_Tampered(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewSigner(newTestEntity(t))

	msg := []byte("original payload")
	sig, err := s.Sign(ctx, msg)
	require.NoError(t, err)

	err = s.Verify(ctx, []byte("tampered payload"), sig)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

// TestSigner_Verify_WrongKey tests rejection by a different keyring
func TestSigner_Verify_WrongKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	signer := NewSigner(newTestEntity(t))
	other := NewSigner(newTestEntity(t))

	msg := []byte("payload")
	sig, err := signer.Sign(ctx, msg)
	require.NoError(t, err)

	require.ErrorIs(t, other.Verify(ctx, msg, sig), ErrInvalidSignature)
}

// TestLoadSigner_BinaryKeyring tests loading a serialized private keyring
func TestLoadSigner_BinaryKeyring(t *testing.T) {
	t.Parallel()

	entity := newTestEntity(t)

	path := filepath.Join(t.TempDir(), "keyring.gpg")
	f, err := os.Create(path) //nolint:gosec // test file
	require.NoError(t, err)
	require.NoError(t, entity.SerializePrivate(f, nil))
	require.NoError(t, f.Close())

	loaded, err := LoadSigner(path)
	require.NoError(t, err)

	ctx := context.Background()
	msg := []byte("signed after reload")
	sig, err := loaded.Sign(ctx, msg)
	require.NoError(t, err)
	require.NoError(t, loaded.Verify(ctx, msg, sig))
}

// TestLoadSigner_MissingFile tests the open error path
func TestLoadSigner_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadSigner(filepath.Join(t.TempDir(), "absent.gpg"))
	require.Error(t, err)
}

// TestSigner_Sign_NoPrivateKey tests signing without a private key
func TestSigner_Sign_NoPrivateKey(t *testing.T) {
	t.Parallel()

	s := &Signer{}
	_, err := s.Sign(context.Background(), []byte("msg"))
	require.ErrorIs(t, err, ErrNoSigningKey)
}
