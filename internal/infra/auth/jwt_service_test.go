package auth

import (
	"testing"
	"time"

	"booker/config"
	"booker/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Auth = secret

	return cfg
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	tokenSvc, err := NewJWTService(newTestConfig("test_auth_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	claims := service.Claims{
		UserID:  uuid.New(),
		Email:   "user@example.com",
		IsAdmin: true,
	}

	for _, tokenType := range []service.TokenType{service.TokenTypeAccess, service.TokenTypeRefresh} {
		token, err := tokenSvc.Issue(claims, tokenType)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		verified, err := tokenSvc.Verify(token, tokenType)
		require.NoError(t, err)
		assert.Equal(t, claims.UserID, verified.UserID)
		assert.Equal(t, claims.Email, verified.Email)
		assert.True(t, verified.IsAdmin)
		assert.Equal(t, tokenType, verified.Type)
	}
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer, err := NewJWTService(newTestConfig("issuer_secret_key_very_long_for_testing"))
	require.NoError(t, err)
	verifier, err := NewJWTService(newTestConfig("different_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	token, err := issuer.Issue(service.Claims{UserID: uuid.New(), Email: "user@example.com"}, service.TokenTypeAccess)
	require.NoError(t, err)

	claims, err := verifier.Verify(token, service.TokenTypeAccess)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_RejectsMistypedToken(t *testing.T) {
	tokenSvc, err := NewJWTService(newTestConfig("test_auth_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	refresh, err := tokenSvc.Issue(service.Claims{UserID: uuid.New(), Email: "user@example.com"}, service.TokenTypeRefresh)
	require.NoError(t, err)

	// A refresh token must not pass where an access token is expected.
	claims, err := tokenSvc.Verify(refresh, service.TokenTypeAccess)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	secret := "test_auth_secret_key_very_long_for_testing"
	tokenSvc, err := NewJWTService(newTestConfig(secret))
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Email: "user@example.com",
		Type:  string(service.TokenTypeAccess),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, err := expired.SignedString([]byte(secret))
	require.NoError(t, err)

	claims, err := tokenSvc.Verify(signed, service.TokenTypeAccess)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_RejectsAlgorithmSubstitution(t *testing.T) {
	tokenSvc, err := NewJWTService(newTestConfig("test_auth_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, tokenClaims{
		Email: "user@example.com",
		Type:  string(service.TokenTypeAccess),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := tokenSvc.Verify(signed, service.TokenTypeAccess)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_MalformedToken(t *testing.T) {
	tokenSvc, err := NewJWTService(newTestConfig("test_auth_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	claims, err := tokenSvc.Verify("clearly-not-a-jwt-token", service.TokenTypeAccess)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecret(t *testing.T) {
	tokenSvc, err := NewJWTService(newTestConfig(""))
	assert.Error(t, err)
	assert.Nil(t, tokenSvc)
}

func TestJWTService_TTL(t *testing.T) {
	tokenSvc, err := NewJWTService(newTestConfig("test_auth_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, tokenSvc.TTL(service.TokenTypeAccess))
	assert.Equal(t, 7*24*time.Hour, tokenSvc.TTL(service.TokenTypeRefresh))
}
