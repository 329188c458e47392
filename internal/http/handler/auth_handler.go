package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gatewatch/console-api/internal/auth"
	"github.com/gatewatch/console-api/internal/domain"
	"github.com/gatewatch/console-api/internal/service"
	"go.uber.org/zap"
)

// AuthHandler handles login, logout, registration, and session lookup.
type AuthHandler struct {
	users  *service.UserStore
	tokens *auth.TokenManager
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users *service.UserStore, tokens *auth.TokenManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Login authenticates and returns a session token plus the user.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	user, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		h.logger.Error("failed to issue session token", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	respondJSON(w, http.StatusOK, domain.LoginResponse{Token: token, User: *user})
}

// Logout clears the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Logout(r.Context()); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Logout failed")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Register creates a new account. Registration never logs the caller in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	user, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			respondWithError(w, http.StatusConflict, "Email is already registered")
			return
		}
		h.logger.Error("registration failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Me returns the current session user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.users.Current()
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "No active session")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
