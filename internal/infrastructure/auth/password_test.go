package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("hashes and verifies", func(t *testing.T) {
		hash, err := HashPassword("correct horse battery staple")
		require.NoError(t, err)
		assert.NotEqual(t, "correct horse battery staple", hash)

		assert.True(t, VerifyPassword(hash, "correct horse battery staple"))
		assert.False(t, VerifyPassword(hash, "wrong password"))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		_, err := HashPassword("short")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("same password hashes differently", func(t *testing.T) {
		h1, err := HashPassword("password123")
		require.NoError(t, err)
		h2, err := HashPassword("password123")
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})
}

func TestVerifyPasswordWithInvalidHash(t *testing.T) {
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "anything"))
}
