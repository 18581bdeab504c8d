package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, VerifyPassword("password123", hash))
	assert.False(t, VerifyPassword("wrong", hash))
	assert.False(t, VerifyPassword("password123", "not-a-hash"))
}

func TestNewResetToken(t *testing.T) {
	plain, hashed, expire, err := NewResetToken()
	require.NoError(t, err)

	assert.Len(t, plain, 40) // 20 random bytes, hex encoded
	assert.NotEqual(t, plain, hashed)
	assert.Equal(t, HashResetToken(plain), hashed)
	assert.WithinDuration(t, time.Now().Add(ResetTokenTTL), expire, time.Minute)

	plain2, _, _, err := NewResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, plain, plain2)
}
