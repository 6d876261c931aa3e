// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	token, err := GenerateJWT("user-uuid-1", "sophie", []string{"USER", "ADMIN"}, 1)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-uuid-1", claims.UserID)
	assert.Equal(t, "sophie", claims.Username)
	assert.Equal(t, []string{"USER", "ADMIN"}, claims.Roles)
	assert.Equal(t, "boutique-location", claims.Issuer)
}

func TestJWTRejectsTamperedSecret(t *testing.T) {
	SetJWTSecret("unit-test-secret")
	token, err := GenerateJWT("user-uuid-1", "sophie", []string{"USER"}, 1)
	require.NoError(t, err)

	SetJWTSecret("another-secret")
	_, err = ValidateJWT(token)
	require.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	token, err := GenerateRefreshToken("user-uuid-2", 24)
	require.NoError(t, err)

	subject, err := ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-uuid-2", subject)
}
