package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("12345"))
	assert.NoError(t, ValidatePassword("123456"))
}
