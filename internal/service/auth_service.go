package service

import (
	"context"
	"errors"
	"time"

	"stairs/gym-reports/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// AuthService authenticates the single operator account that may trigger
// report runs through the API.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, err error)
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	operator      config.OperatorConfig
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(operator config.OperatorConfig, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 1
	}
	return &authService{
		operator:      operator,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Login checks the operator credentials and returns a signed JWT.
func (s *authService) Login(_ context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", errors.New("email and password cannot be empty")
	}

	if email != s.operator.Email {
		return "", ErrAuthenticationFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.operator.PasswordHash), []byte(password)); err != nil {
		return "", ErrAuthenticationFailed
	}

	token, err := s.generateJWT(email)
	if err != nil {
		return "", ErrTokenGeneration
	}
	return token, nil
}

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (s *authService) generateJWT(email string) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "gym-reports",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication.
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
