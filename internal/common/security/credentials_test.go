package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSalt(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)
	assert.Len(t, salt, CredentialLength)

	other, err := NewSalt()
	require.NoError(t, err)
	assert.NotEqual(t, salt, other, "two salts should never collide")
}

func TestNewToken(t *testing.T) {
	token, err := NewToken()
	require.NoError(t, err)
	assert.Len(t, token, CredentialLength)

	other, err := NewToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other, "two tokens should never collide")
}

func TestHashPasswordDeterministic(t *testing.T) {
	h1 := HashPassword("hunter2", "somesalt")
	h2 := HashPassword("hunter2", "somesalt")
	assert.Equal(t, h1, h2, "same password and salt must hash identically")

	assert.NotEqual(t, h1, HashPassword("hunter2", "othersalt"))
	assert.NotEqual(t, h1, HashPassword("hunter3", "somesalt"))
}

func TestVerify(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)
	hash := HashPassword("correct horse battery staple", salt)

	assert.True(t, Verify("correct horse battery staple", salt, hash))
	assert.False(t, Verify("correct horse battery stapl", salt, hash))
	assert.False(t, Verify("Correct horse battery staple", salt, hash))
	assert.False(t, Verify("correct horse battery staple", salt+"x", hash))
	assert.False(t, Verify("", salt, hash))
}

func TestVerifySingleCharacterMutations(t *testing.T) {
	const password = "pa55word"
	salt, err := NewSalt()
	require.NoError(t, err)
	hash := HashPassword(password, salt)

	for i := 0; i < len(password); i++ {
		mutated := []byte(password)
		mutated[i] ^= 0x01
		assert.False(t, Verify(string(mutated), salt, hash),
			"mutation at position %d must not verify", i)
	}
}
