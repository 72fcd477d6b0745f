package auth

import (
	"os"
	"testing"

	"jobportal_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("DATABASE_URL", "test")
	os.Setenv("JWT_SECRET", "unit_test_secret")
	config.LoadConfig()
	os.Exit(m.Run())
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-123", "job_seeker")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "job_seeker", claims.Role)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-123", "job_seeker")
	require.NoError(t, err)

	original := config.AppConfig.JWT.Secret
	config.AppConfig.JWT.Secret = "a_different_secret"
	defer func() { config.AppConfig.JWT.Secret = original }()

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
