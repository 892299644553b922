package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "refbase.test",
	})
}

func TestGenerateAdminToken_RoundTrip(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	token, expiresIn, err := svc.GenerateAdminToken()
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.True(t, claims.Admin)
	assert.Equal(t, "refbase.test", claims.Issuer)
	assert.NotEmpty(t, claims.RegisteredClaims.ID)

	session := claims.Session()
	assert.True(t, session.Admin)
	assert.Equal(t, claims.RegisteredClaims.ID, session.ID)
}

func TestValidateAndExtractClaims_ExpiredToken(t *testing.T) {
	svc := newTestJWTService(-time.Minute)

	token, _, err := svc.GenerateAdminToken()
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateAndExtractClaims_WrongSecret(t *testing.T) {
	token, _, err := newTestJWTService(time.Hour).GenerateAdminToken()
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other-secret", AccessTokenExp: time.Hour})
	_, err = other.ValidateAndExtractClaims(token)
	assert.Error(t, err)
}

func TestValidateAndExtractClaims_EmptyToken(t *testing.T) {
	_, err := newTestJWTService(time.Hour).ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	// A raw token without the scheme prefix passes through
	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestAnonymous_HasNoCapabilities(t *testing.T) {
	session := Anonymous()
	assert.Empty(t, session.ID)
	assert.False(t, session.Admin)
}

func TestCheckAdminSecret_PlainSecret(t *testing.T) {
	assert.True(t, CheckAdminSecret("clubhouse", "clubhouse"))
	assert.False(t, CheckAdminSecret("clubhouse", "wrong"))
}

func TestCheckAdminSecret_EmptyConfigFallsBackToDefault(t *testing.T) {
	assert.True(t, CheckAdminSecret("", DefaultAdminSecret))
	assert.False(t, CheckAdminSecret("", "wrong"))
}

func TestCheckAdminSecret_BcryptHash(t *testing.T) {
	hash, err := HashPassword("clubhouse")
	require.NoError(t, err)

	assert.True(t, CheckAdminSecret(hash, "clubhouse"))
	assert.False(t, CheckAdminSecret(hash, "wrong"))
}
