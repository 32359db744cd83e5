package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/greenways/greenways/internal/api/models"
	"github.com/greenways/greenways/internal/api/response"
	"github.com/greenways/greenways/internal/auth"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles POST /v1/auth/register - create a new account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	creds, err := h.authService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrValidation):
			response.BadRequest(w, r, validationDetail(err), nil)
		case errors.Is(err, auth.ErrEmailTaken):
			response.Conflict(w, r, "a user with this email already exists")
		default:
			response.InternalError(w, r, "registration failed")
		}
		return
	}

	response.JSON(w, r, http.StatusCreated, authResponse("User registered successfully", creds))
}

// Login handles POST /v1/auth/login - authenticate with email and password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	creds, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Unauthorized(w, r, "invalid credentials")
			return
		}
		response.InternalError(w, r, "login failed")
		return
	}

	response.JSON(w, r, http.StatusOK, authResponse("Login successful", creds))
}

// authResponse converts credentials to the API auth payload.
func authResponse(message string, creds *auth.Credentials) models.AuthResponse {
	return models.AuthResponse{
		Message: message,
		User: models.UserSummary{
			ID:    creds.User.ID,
			Name:  creds.User.Name,
			Email: creds.User.Email,
		},
		Token: creds.Token,
	}
}

// validationDetail strips the sentinel prefix from a validation error so
// the response detail reads naturally.
func validationDetail(err error) string {
	detail := err.Error()
	if idx := strings.Index(detail, ": "); idx >= 0 {
		return detail[idx+2:]
	}
	return detail
}
