package auth

import (
	"crypto/subtle"

	"github.com/gatewatch/console-api/internal/config"
	"github.com/gatewatch/console-api/internal/domain"
)

// CredentialVerifier checks a password for a known user account. The user
// store only ever sees the boolean outcome, so a real backend (LDAP, hashed
// passwords, SSO) can replace the static scheme without touching the store's
// CRUD contract.
type CredentialVerifier interface {
	Verify(user *domain.User, password string) bool
}

// StaticVerifier is the demo credential scheme: the reserved admin account
// has its own fixed password, and every other registered account shares a
// single test password. Not a security mechanism.
type StaticVerifier struct {
	adminEmail     string
	adminPassword  string
	sharedPassword string
}

// NewStaticVerifier creates a verifier from the configured demo credentials.
func NewStaticVerifier(cfg *config.AuthConfig) *StaticVerifier {
	return &StaticVerifier{
		adminEmail:     cfg.AdminEmail,
		adminPassword:  cfg.AdminPassword,
		sharedPassword: cfg.SharedPassword,
	}
}

// Verify checks the admin credential pair first, then falls through to the
// shared test password for any registered account.
func (v *StaticVerifier) Verify(user *domain.User, password string) bool {
	if user.Email == v.adminEmail && equal(password, v.adminPassword) {
		return true
	}
	return equal(password, v.sharedPassword)
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
