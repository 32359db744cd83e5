package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Service errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
)

// Service handles account registration, login and token validation.
type Service struct {
	repo   UserRepository
	jwt    *JWTService
	logger zerolog.Logger
}

// NewService creates a new auth service.
func NewService(repo UserRepository, jwtService *JWTService, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		jwt:    jwtService,
		logger: logger.With().Str("component", "auth_service").Logger(),
	}
}

// Register creates a new account and returns credentials for it.
// Returns ErrEmailTaken if the email is already registered.
func (s *Service) Register(ctx context.Context, name, email, password string) (*Credentials, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if err := validateRegistration(name, email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	user := &User{
		ID:           generateUserID(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generating access token: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("User registered")

	return &Credentials{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Login verifies the email and password and returns fresh credentials.
// Returns ErrInvalidCredentials for an unknown email or a wrong password;
// the two cases are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*Credentials, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generating access token: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("User logged in")

	return &Credentials{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// ValidateAccessToken validates a bearer token and returns the user ID
// it was issued for.
func (s *Service) ValidateAccessToken(tokenString string) (string, error) {
	claims, err := s.jwt.ValidateAccessToken(tokenString)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// GetUser returns the user with the given ID.
func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// validateRegistration checks the registration inputs.
func validateRegistration(name, email, password string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case email == "":
		return fmt.Errorf("%w: email is required", ErrValidation)
	case !strings.Contains(email, "@"):
		return fmt.Errorf("%w: email is not a valid address", ErrValidation)
	case len(password) < 8:
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	return nil
}

// normalizeEmail lowercases and trims an email address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateUserID generates a prefixed user ID.
func generateUserID() string {
	return "usr_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:22]
}
