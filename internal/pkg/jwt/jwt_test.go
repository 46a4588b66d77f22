package jwt_test

import (
	"testing"

	"hmc-messhub/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	accessSecret  = "test-access-secret"
	refreshSecret = "test-refresh-secret"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	hostelID := uint(3)
	token, err := jwt.GenerateAccessToken(42, "s1@test.local", "student", &hostelID, accessSecret, 15)
	require.NoError(t, err)

	claims, err := jwt.ValidateAccessToken(token, accessSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "s1@test.local", claims.Email)
	assert.Equal(t, "student", claims.Role)
	require.NotNil(t, claims.HostelID)
	assert.Equal(t, uint(3), *claims.HostelID)
}

func TestAccessToken_NilHostelPreserved(t *testing.T) {
	token, err := jwt.GenerateAccessToken(1, "admin@test.local", "admin", nil, accessSecret, 15)
	require.NoError(t, err)

	claims, err := jwt.ValidateAccessToken(token, accessSecret)
	require.NoError(t, err)
	assert.Nil(t, claims.HostelID)
}

func TestAccessToken_WrongSecretRejected(t *testing.T) {
	token, err := jwt.GenerateAccessToken(42, "s1@test.local", "student", nil, accessSecret, 15)
	require.NoError(t, err)

	_, err = jwt.ValidateAccessToken(token, "a-different-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func TestAccessToken_ExpiredRejected(t *testing.T) {
	token, err := jwt.GenerateAccessToken(42, "s1@test.local", "student", nil, accessSecret, -1)
	require.NoError(t, err)

	_, err = jwt.ValidateAccessToken(token, accessSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	token, err := jwt.GenerateRefreshToken(42, "token-id-1", refreshSecret, 7)
	require.NoError(t, err)

	claims, err := jwt.ValidateRefreshToken(token, refreshSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "token-id-1", claims.TokenID)
}

func TestRefreshToken_NotValidAsAccessToken(t *testing.T) {
	// The two token kinds are signed with different secrets, so one
	// can never be replayed as the other.
	token, err := jwt.GenerateRefreshToken(42, "token-id-1", refreshSecret, 7)
	require.NoError(t, err)

	_, err = jwt.ValidateAccessToken(token, accessSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func TestValidate_GarbageRejected(t *testing.T) {
	_, err := jwt.ValidateAccessToken("not-a-token", accessSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)

	_, err = jwt.ValidateRefreshToken("", refreshSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}
