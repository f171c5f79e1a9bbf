package auth

import (
	"context"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/arborhaus/arbor-backend/internal/apperr"
)

type service struct {
	creds  CredentialSource
	secret []byte
}

// NewService creates a new auth service signing tokens with secret.
func NewService(creds CredentialSource, secret string) Service {
	return &service{creds: creds, secret: []byte(secret)}
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	id, hash, err := s.creds.Credentials(ctx, email)
	if err != nil {
		// same response for unknown email and wrong password
		return "", apperr.Unauthenticated("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", apperr.Unauthenticated("invalid credentials")
	}

	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &jwt.StandardClaims{
		Subject:   id,
		ExpiresAt: expirationTime.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
