// Package auth provides account registration, login and token validation
// for GreenWays.
package auth

import "time"

// User represents a registered account. Only a bcrypt hash of the
// password is persisted; the hash never leaves this package.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Credentials is the result of a successful register or login.
type Credentials struct {
	User      *User
	Token     string
	ExpiresAt time.Time
}
