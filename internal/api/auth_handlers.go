package api

import (
	"encoding/json"
	"net/http"

	"github.com/example/bookstore-admin/internal/domain/admin"
)

// AuthHandlers handles the login endpoint.
type AuthHandlers struct {
	admins *admin.Service
}

func NewAuthHandlers(admins *admin.Service) *AuthHandlers {
	return &AuthHandlers{admins: admins}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Token   string        `json:"token"`
	Profile admin.Profile `json:"profile"`
}

// Login verifies credentials and returns a signed token with the user's
// public profile.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, profile, err := h.admins.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{
		Token:   token,
		Profile: *profile,
	})
}
