package user

import "context"

// Service defines the interface for user-related business logic.
type Service interface {
	RegisterUser(ctx context.Context, req RegisterRequest) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)

	// DeleteUser removes the account. The user's cart goes with it; orders
	// survive with a nulled user reference.
	DeleteUser(ctx context.Context, id string) error

	// Credentials returns the id and password hash for an email, for the
	// auth module to verify a login against.
	Credentials(ctx context.Context, email string) (id string, passwordHash string, err error)
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
