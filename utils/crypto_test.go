package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordAndCheck(t *testing.T) {
	hash, err := HashPassword("secret1234")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret1234", hash)

	assert.True(t, CheckPasswordHash("secret1234", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestHashPasswordProducesUniqueHashes(t *testing.T) {
	first, err := HashPassword("secret1234")
	require.NoError(t, err)
	second, err := HashPassword("secret1234")
	require.NoError(t, err)

	// bcrypt 內建隨機 salt，同一密碼兩次哈希結果必不相同
	assert.NotEqual(t, first, second)
}
