package auth

import (
	"context"

	"github.com/gatewatch/console-api/internal/domain"
	"github.com/google/uuid"
)

type contextKey string

const userContextKey contextKey = "user_context"

// UserContext carries the authenticated caller through the request context.
type UserContext struct {
	UserID uuid.UUID
	Email  string
	Role   domain.UserRole
}

// IsAdmin reports whether the caller has the admin role.
func (u *UserContext) IsAdmin() bool {
	return u.Role == domain.UserRoleAdmin
}

// WithUserContext returns a new context carrying the user context.
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts the user context, if present.
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}
