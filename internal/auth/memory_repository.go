package auth

import (
	"context"
	"strings"
	"sync"
)

// InMemoryUserRepository is an in-memory implementation of UserRepository for testing.
type InMemoryUserRepository struct {
	mu      sync.RWMutex
	users   map[string]*User // keyed by user ID
	byEmail map[string]string
}

// NewInMemoryUserRepository creates a new in-memory user repository.
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:   make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

// Create creates a new user.
func (r *InMemoryUserRepository) Create(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, exists := r.byEmail[key]; exists {
		return ErrEmailTaken
	}

	u := *user
	r.users[user.ID] = &u
	r.byEmail[key] = user.ID
	return nil
}

// FindByEmail finds a user by email address.
func (r *InMemoryUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrUserNotFound
	}

	u := *r.users[id]
	return &u, nil
}

// FindByID finds a user by their internal ID.
func (r *InMemoryUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	u := *user
	return &u, nil
}

// Ensure InMemoryUserRepository implements UserRepository interface.
var _ UserRepository = (*InMemoryUserRepository)(nil)
