package auth

import (
	"testing"
	"time"

	"github.com/crestline-build/bidtrack-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		SigningSecret: testSecret,
		Issuer:        "bidtrack-api",
		Audience:      "bidtrack-clients",
	}
}

func signToken(t *testing.T, claims *Claims, method jwt.SigningMethod, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(userID uuid.UUID) *Claims {
	return &Claims{
		DisplayName: "Jordan Smith",
		Email:       "jordan@crestline.build",
		Role:        RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    "bidtrack-api",
			Audience:  jwt.ClaimStrings{"bidtrack-clients"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestJWTValidator_ValidToken(t *testing.T) {
	v := NewJWTValidator(testAuthConfig())
	userID := uuid.New()

	token := signToken(t, validClaims(userID), jwt.SigningMethodHS256, testSecret)
	user, err := v.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, user.UserID)
	assert.Equal(t, "Jordan Smith", user.DisplayName)
	assert.Equal(t, "jordan@crestline.build", user.Email)
	assert.Equal(t, RoleAdmin, user.Role)
}

func TestJWTValidator_EmptyRoleDefaultsToMember(t *testing.T) {
	v := NewJWTValidator(testAuthConfig())

	claims := validClaims(uuid.New())
	claims.Role = ""
	token := signToken(t, claims, jwt.SigningMethodHS256, testSecret)

	user, err := v.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RoleMember, user.Role)
}

func TestJWTValidator_ExpiredToken(t *testing.T) {
	v := NewJWTValidator(testAuthConfig())

	claims := validClaims(uuid.New())
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	token := signToken(t, claims, jwt.SigningMethodHS256, testSecret)

	_, err := v.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTValidator_WrongSecret(t *testing.T) {
	v := NewJWTValidator(testAuthConfig())

	token := signToken(t, validClaims(uuid.New()), jwt.SigningMethodHS256, "some-other-secret")
	_, err := v.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTValidator_WrongIssuer(t *testing.T) {
	v := NewJWTValidator(testAuthConfig())

	claims := validClaims(uuid.New())
	claims.Issuer = "someone-else"
	token := signToken(t, claims, jwt.SigningMethodHS256, testSecret)

	_, err := v.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTValidator_WrongAudience(t *testing.T) {
	v := NewJWTValidator(testAuthConfig())

	claims := validClaims(uuid.New())
	claims.Audience = jwt.ClaimStrings{"other-app"}
	token := signToken(t, claims, jwt.SigningMethodHS256, testSecret)

	_, err := v.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTValidator_RejectsNonHMACMethod(t *testing.T) {
	v := NewJWTValidator(testAuthConfig())

	// alg=none style tokens must never validate
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims(uuid.New())).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = v.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTValidator_NonUUIDSubject(t *testing.T) {
	v := NewJWTValidator(testAuthConfig())

	claims := validClaims(uuid.New())
	claims.Subject = "jordan"
	token := signToken(t, claims, jwt.SigningMethodHS256, testSecret)

	_, err := v.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
