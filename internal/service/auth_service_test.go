package service

import (
	"context"
	"testing"
	"time"

	"stairs/gym-reports/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(config.OperatorConfig{
		Email:        "ops@stairsgym.com",
		PasswordHash: string(hash),
	}, "test-secret", time.Hour)
}

func TestLogin_Success(t *testing.T) {
	svc := newAuthService(t)

	token, err := svc.Login(context.Background(), "ops@stairsgym.com", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "ops@stairsgym.com", claims.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Login(context.Background(), "ops@stairsgym.com", "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Login(context.Background(), "someone@else.com", "correct horse")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestLogin_EmptyInput(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Login(context.Background(), "", "")
	assert.Error(t, err)
}
