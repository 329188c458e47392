package domain

import "github.com/google/uuid"

// CreateGatewayRequest is the payload for registering a gateway endpoint.
type CreateGatewayRequest struct {
	Name       string      `json:"name" validate:"required"`
	APIBaseURL string      `json:"apiBaseUrl" validate:"required,url"`
	APIKey     string      `json:"apiKey" validate:"required"`
	Kind       GatewayKind `json:"kind" validate:"omitempty,oneof=UDM UCG"`
}

// UpdateGatewayRequest carries a partial update: only non-nil fields are
// merged into the existing gateway.
type UpdateGatewayRequest struct {
	Name       *string        `json:"name,omitempty"`
	APIBaseURL *string        `json:"apiBaseUrl,omitempty" validate:"omitempty,url"`
	APIKey     *string        `json:"apiKey,omitempty"`
	Kind       *GatewayKind   `json:"kind,omitempty" validate:"omitempty,oneof=UDM UCG"`
	Status     *GatewayStatus `json:"status,omitempty" validate:"omitempty,oneof=online offline error"`
}

// TestConnectionRequest is the payload for the connectivity probe.
type TestConnectionRequest struct {
	APIBaseURL string `json:"apiBaseUrl" validate:"required,url"`
	APIKey     string `json:"apiKey" validate:"required"`
}

// GatewayListResponse returns the registry contents plus the active selection.
type GatewayListResponse struct {
	Gateways []Gateway  `json:"gateways"`
	ActiveID *uuid.UUID `json:"activeId,omitempty"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the session token and the authenticated user.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterRequest is the payload for self-registration.
type RegisterRequest struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required"`
	Role     UserRole `json:"role" validate:"omitempty,oneof=admin user"`
}

// CreateUserRequest is the payload for the admin user management screen.
type CreateUserRequest struct {
	Name  string   `json:"name" validate:"required"`
	Email string   `json:"email" validate:"required,email"`
	Role  UserRole `json:"role" validate:"omitempty,oneof=admin user"`
}

// UpdateUserRequest carries a partial user update.
type UpdateUserRequest struct {
	Name  *string   `json:"name,omitempty"`
	Email *string   `json:"email,omitempty" validate:"omitempty,email"`
	Role  *UserRole `json:"role,omitempty" validate:"omitempty,oneof=admin user"`
}
