package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenways/greenways/internal/auth"
)

func TestJWTService_GenerateAndValidateAccessToken(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "test-secret-key-for-testing-only",
		Issuer:     "https://api.greenways.app",
		Audience:   "greenways-api",
	})

	user := &auth.User{
		ID:        "usr_test123",
		Name:      "Test User",
		Email:     "test@example.com",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// Generate token
	token, expiresAt, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
	assert.WithinDuration(t, time.Now().Add(auth.AccessTokenExpiry), expiresAt, time.Minute)

	// Validate token
	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, "https://api.greenways.app", claims.Issuer)
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "test-secret-key-for-testing-only",
		Issuer:     "https://api.greenways.app",
		Audience:   "greenways-api",
	})

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"malformed token", "not.a.valid.jwt"},
		{"invalid base64", "xxx.yyy.zzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestJWTService_WrongSigningKey(t *testing.T) {
	// Generate with one key
	svc1 := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "key-one",
		Issuer:     "https://api.greenways.app",
		Audience:   "greenways-api",
	})

	user := &auth.User{ID: "usr_test123"}
	token, _, err := svc1.GenerateAccessToken(user)
	require.NoError(t, err)

	// Validate with different key
	svc2 := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "key-two",
		Issuer:     "https://api.greenways.app",
		Audience:   "greenways-api",
	})

	_, err = svc2.ValidateAccessToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidAccessToken)
}

func TestJWTService_WrongIssuer(t *testing.T) {
	svc1 := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "shared-key",
		Issuer:     "https://other-issuer.example.com",
		Audience:   "greenways-api",
	})

	user := &auth.User{ID: "usr_test123"}
	token, _, err := svc1.GenerateAccessToken(user)
	require.NoError(t, err)

	svc2 := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "shared-key",
		Issuer:     "https://api.greenways.app",
		Audience:   "greenways-api",
	})

	_, err = svc2.ValidateAccessToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidAccessToken)
}
