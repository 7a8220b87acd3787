package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")
	k1 := DeriveKey([]byte("pass"), salt)
	k2 := DeriveKey([]byte("pass"), salt)

	require.Len(t, k1, 32)
	assert.Equal(t, k1, k2)
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	salt := []byte("0123456789abcdef")
	k1 := DeriveKey([]byte("pass"), salt)
	k2 := DeriveKey([]byte("other"), salt)
	k3 := DeriveKey([]byte("pass"), []byte("fedcba9876543210"))

	assert.NotEqual(t, k1, k2)
	assert.NotEqual(t, k1, k3)
}

func TestSealOpen_RoundTrip(t *testing.T) {
	plain := []byte("SQLite format 3\x00 pretend database")

	sealed, err := Seal([]byte("secret"), plain)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(sealed, []byte("pretend database")), "plaintext must not leak")

	got, err := Open([]byte("secret"), sealed)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestSeal_FreshSaltEachCall(t *testing.T) {
	a, err := Seal([]byte("secret"), []byte("same"))
	require.NoError(t, err)
	b, err := Seal([]byte("secret"), []byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestOpen_WrongPassphrase(t *testing.T) {
	sealed, err := Seal([]byte("secret"), []byte("payload"))
	require.NoError(t, err)

	_, err = Open([]byte("guess"), sealed)
	require.Error(t, err)
}

func TestOpen_TooShort(t *testing.T) {
	_, err := Open([]byte("secret"), []byte("tiny"))
	require.ErrorIs(t, err, ErrSealedTooShort)

	_, err = Open([]byte("secret"), make([]byte, saltSize+4))
	require.ErrorIs(t, err, ErrSealedTooShort)
}
