package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	seed, err := GenerateRandBytes(32)
	require.NoError(t, err)
	salt, err := GenerateRandBytes(16)
	require.NoError(t, err)

	key := DeriveKey(seed, salt)
	require.Len(t, key, 32)

	plaintext := []byte("sk-very-secret-api-key")

	ciphertext, nonce, err := Seal(plaintext, key)
	require.NoError(t, err)
	require.Len(t, nonce, 12)
	assert.NotEqual(t, plaintext, ciphertext)

	got, err := Open(ciphertext, nonce, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestOpen_WrongKeyFails(t *testing.T) {
	key1 := DeriveKey([]byte("seed1"), []byte("salt"))
	key2 := DeriveKey([]byte("seed2"), []byte("salt"))

	ciphertext, nonce, err := Seal([]byte("payload"), key1)
	require.NoError(t, err)

	_, err = Open(ciphertext, nonce, key2)
	require.Error(t, err)
}

func TestDeriveKey_Deterministic(t *testing.T) {
	a := DeriveKey([]byte("seed"), []byte("salt"))
	b := DeriveKey([]byte("seed"), []byte("salt"))
	assert.Equal(t, a, b)
}
