package auth

import "context"

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// CredentialSource resolves an email to a user id and password hash.
// Implemented by the user service.
type CredentialSource interface {
	Credentials(ctx context.Context, email string) (id string, passwordHash string, err error)
}
