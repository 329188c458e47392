package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gatewatch/console-api/internal/domain"
	"github.com/gatewatch/console-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserHandler handles the admin user management endpoints.
type UserHandler struct {
	users  *service.UserStore
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *service.UserStore, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// ListUsers returns all application users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.users.List())
}

// CreateUser appends a user from the management screen.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	user, err := h.users.AddUser(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			respondWithError(w, http.StatusConflict, "Email is already registered")
			return
		}
		h.logger.Error("failed to add user", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to add user")
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// UpdateUser merges the supplied fields into a user.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID: must be a valid UUID")
		return
	}

	var req domain.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	user, err := h.users.UpdateUser(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrDuplicateEmail):
			respondWithError(w, http.StatusConflict, "Email is already registered")
		default:
			h.logger.Error("failed to update user", zap.Error(err), zap.String("user_id", id.String()))
			respondWithError(w, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// DeleteUser removes a user.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID: must be a valid UUID")
		return
	}

	if err := h.users.RemoveUser(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("failed to remove user", zap.Error(err), zap.String("user_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to remove user")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
