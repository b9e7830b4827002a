package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretBoxRoundTrip(t *testing.T) {
	box, err := NewSecretBox("key material")
	require.NoError(t, err)

	for _, plaintext := range []string{"", "short", "a much longer secret value with spaces and symbols !@#$"} {
		encrypted, err := box.Encrypt(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, encrypted)

		decrypted, err := box.Decrypt(encrypted)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestSecretBoxEncryptIsNonDeterministic(t *testing.T) {
	box, err := NewSecretBox("key material")
	require.NoError(t, err)

	first, err := box.Encrypt("secret")
	require.NoError(t, err)
	second, err := box.Encrypt("secret")
	require.NoError(t, err)

	// Fresh nonce per call.
	assert.NotEqual(t, first, second)
}

func TestSecretBoxRejectsEmptyKey(t *testing.T) {
	_, err := NewSecretBox("")
	assert.Error(t, err)
}

func TestSecretBoxDecryptErrors(t *testing.T) {
	box, err := NewSecretBox("key material")
	require.NoError(t, err)

	t.Run("not hex", func(t *testing.T) {
		_, err := box.Decrypt("zzzz")
		assert.Error(t, err)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := box.Decrypt("abcd")
		assert.Error(t, err)
	})

	t.Run("wrong key", func(t *testing.T) {
		other, err := NewSecretBox("different key")
		require.NoError(t, err)
		encrypted, err := other.Encrypt("secret")
		require.NoError(t, err)

		_, err = box.Decrypt(encrypted)
		assert.Error(t, err)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		encrypted, err := box.Encrypt("secret")
		require.NoError(t, err)
		tampered := []byte(encrypted)
		if tampered[len(tampered)-1] == '0' {
			tampered[len(tampered)-1] = '1'
		} else {
			tampered[len(tampered)-1] = '0'
		}

		_, err = box.Decrypt(string(tampered))
		assert.Error(t, err)
	})
}
