package auth

import (
	"context"
	"errors"
)

// Repository errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("a user with this email already exists")
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// Create creates a new user. Returns ErrEmailTaken if the email is
	// already registered.
	Create(ctx context.Context, user *User) error

	// FindByEmail finds a user by email address.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID finds a user by their internal ID.
	FindByID(ctx context.Context, id string) (*User, error)
}
