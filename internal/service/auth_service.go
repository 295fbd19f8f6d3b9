package service

import (
	"fmt"
	"time"

	"clover/internal/apperr"
	"clover/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AuthService interface {
	VerifyToken(tokenString string) (string, error)
	IssueToken(userID string, ttl time.Duration) (string, error)
}

type authService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{cfg: cfg}
}

// VerifyToken checks an HS256 access token from the hosted auth service and
// returns its subject. Every failure is reported as apperr.ErrUnauthorized.
func (s *authService) VerifyToken(tokenString string) (string, error) {
	if s.cfg.AuthJWTSecret == "" || tokenString == "" {
		return "", apperr.ErrUnauthorized
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.AuthJWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", apperr.ErrUnauthorized
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", apperr.ErrUnauthorized
	}
	// Owner columns are UUIDs.
	if _, err := uuid.Parse(sub); err != nil {
		return "", apperr.ErrUnauthorized
	}

	return sub, nil
}

// IssueToken signs a token the way the hosted auth service does. It backs the
// CLI's token command and tests.
func (s *authService) IssueToken(userID string, ttl time.Duration) (string, error) {
	if s.cfg.AuthJWTSecret == "" {
		return "", fmt.Errorf("AUTH_JWT_SECRET is not set")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.AuthJWTSecret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}
