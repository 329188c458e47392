package auth

import (
	"testing"

	"github.com/gatewatch/console-api/internal/config"
	"github.com/gatewatch/console-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func newTestVerifier() *StaticVerifier {
	return NewStaticVerifier(&config.AuthConfig{
		AdminEmail:     "admin@unifi.local",
		AdminPassword:  "admin123",
		SharedPassword: "123456",
	})
}

func TestStaticVerifier(t *testing.T) {
	admin := &domain.User{Email: "admin@unifi.local", Role: domain.UserRoleAdmin}
	regular := &domain.User{Email: "maria@example.com", Role: domain.UserRoleUser}

	tests := []struct {
		name     string
		user     *domain.User
		password string
		want     bool
	}{
		{"admin with admin password", admin, "admin123", true},
		{"admin with shared password", admin, "123456", true},
		{"admin with wrong password", admin, "nope", false},
		{"regular with shared password", regular, "123456", true},
		{"regular with admin password", regular, "admin123", false},
		{"regular with wrong password", regular, "nope", false},
		{"empty password", regular, "", false},
	}

	verifier := newTestVerifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, verifier.Verify(tt.user, tt.password))
		})
	}
}
