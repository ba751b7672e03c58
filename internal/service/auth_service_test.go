package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtdacademy/gradebook-api/internal/models"
)

func signedToken(t *testing.T, secret string, claims models.JWTClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthServiceValidateToken(t *testing.T) {
	svc := NewAuthService(AuthConfig{Secret: "secret"}, nil)
	raw := signedToken(t, "secret", models.JWTClaims{
		Email: "teacher@x.ca",
		Role:  models.RoleTeacher,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := svc.ValidateToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "teacher@x.ca", claims.Email)
	assert.True(t, claims.Role.IsStaff())
}

func TestAuthServiceRejectsWrongSecret(t *testing.T) {
	svc := NewAuthService(AuthConfig{Secret: "secret"}, nil)
	raw := signedToken(t, "other", models.JWTClaims{Email: "x@x.ca", Role: models.RoleStudent})

	_, err := svc.ValidateToken(raw)
	require.Error(t, err)
}

func TestAuthServiceRejectsExpiredToken(t *testing.T) {
	svc := NewAuthService(AuthConfig{Secret: "secret"}, nil)
	raw := signedToken(t, "secret", models.JWTClaims{
		Email: "x@x.ca",
		Role:  models.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := svc.ValidateToken(raw)
	require.Error(t, err)
}
