package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gatewatch/console-api/internal/auth"
	"github.com/gatewatch/console-api/internal/config"
	"github.com/gatewatch/console-api/internal/domain"
	"github.com/gatewatch/console-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserStore owns the application user list and the single session user.
// Exactly one user is the session user, or none (logged out). Email
// uniqueness is enforced on every path that can introduce an email.
//
// The user list and the session are persisted under separate state records;
// logout removes the session record entirely.
type UserStore struct {
	repo     *repository.StateRepository
	verifier auth.CredentialVerifier
	authCfg  *config.AuthConfig
	logger   *zap.Logger

	mu      sync.RWMutex
	users   []domain.User
	session *domain.User
}

func NewUserStore(repo *repository.StateRepository, verifier auth.CredentialVerifier, authCfg *config.AuthConfig, logger *zap.Logger) *UserStore {
	return &UserStore{
		repo:     repo,
		verifier: verifier,
		authCfg:  authCfg,
		logger:   logger,
	}
}

// Load reads the persisted user list and session. An absent list seeds
// exactly one administrator account; no session is established.
func (s *UserStore) Load(ctx context.Context) error {
	users, err := s.repo.LoadUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if users == nil {
		now := time.Now().UTC()
		admin := domain.User{
			ID:        uuid.New(),
			Name:      s.authCfg.AdminName,
			Email:     s.authCfg.AdminEmail,
			Role:      domain.UserRoleAdmin,
			CreatedAt: now,
			LastLogin: &now,
		}
		s.users = []domain.User{admin}
		if err := s.persistUsers(ctx); err != nil {
			return err
		}
		s.logger.Info("user store seeded with default administrator",
			zap.String("email", admin.Email))
	} else {
		s.users = users
	}

	session, err := s.repo.LoadSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	s.session = session

	s.logger.Info("user store loaded",
		zap.Int("count", len(s.users)),
		zap.Bool("session_active", session != nil),
	)
	return nil
}

// List returns a copy of the registered users.
func (s *UserStore) List() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

// Current returns a copy of the session user, or nil when logged out.
func (s *UserStore) Current() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil
	}
	u := *s.session
	return &u
}

// Login authenticates an email/password pair. On success the user's
// lastLogin is refreshed, the list is persisted, and the user becomes the
// session user. Any non-matching combination fails without state change.
func (s *UserStore) Login(ctx context.Context, email, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexByEmail(email)
	if idx < 0 {
		return nil, ErrInvalidCredentials
	}

	if !s.verifier.Verify(&s.users[idx], password) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	s.users[idx].LastLogin = &now

	session := s.users[idx]
	s.session = &session

	if err := s.persistUsers(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.SaveSession(ctx, s.session); err != nil {
		s.logger.Error("failed to persist session", zap.Error(err))
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("email", email))
	u := session
	return &u, nil
}

// Logout clears the session user and removes the persisted session record.
func (s *UserStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	if err := s.repo.ClearSession(ctx); err != nil {
		s.logger.Error("failed to clear session", zap.Error(err))
		return err
	}
	return nil
}

// Register creates a new account with the default user role unless another
// role is supplied. Registration never establishes a session. A duplicate
// email fails with ErrDuplicateEmail and appends nothing.
//
// The password is accepted for form parity with the console but is not
// stored: the static credential scheme ignores it (see auth.StaticVerifier).
func (s *UserStore) Register(ctx context.Context, name, email, password string, role domain.UserRole) (*domain.User, error) {
	if role == "" {
		role = domain.UserRoleUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexByEmail(email) >= 0 {
		return nil, ErrDuplicateEmail
	}

	user := domain.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	s.users = append(s.users, user)

	if err := s.persistUsers(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("email", email), zap.String("role", string(role)))
	u := user
	return &u, nil
}

// AddUser appends a user from the management screen. Same uniqueness
// invariant as Register.
func (s *UserStore) AddUser(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	role := req.Role
	if role == "" {
		role = domain.UserRoleUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexByEmail(req.Email) >= 0 {
		return nil, ErrDuplicateEmail
	}

	user := domain.User{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	s.users = append(s.users, user)

	if err := s.persistUsers(ctx); err != nil {
		return nil, err
	}

	u := user
	return &u, nil
}

// UpdateUser merges the supplied fields into the matching user. When the
// session user is updated the session reference receives the same merge.
func (s *UserStore) UpdateUser(ctx context.Context, id uuid.UUID, req *domain.UpdateUserRequest) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	if req.Email != nil {
		if other := s.indexByEmail(*req.Email); other >= 0 && other != idx {
			return nil, ErrDuplicateEmail
		}
		s.users[idx].Email = *req.Email
	}
	if req.Name != nil {
		s.users[idx].Name = *req.Name
	}
	if req.Role != nil {
		s.users[idx].Role = *req.Role
	}

	if s.session != nil && s.session.ID == id {
		session := s.users[idx]
		s.session = &session
		if err := s.repo.SaveSession(ctx, s.session); err != nil {
			s.logger.Error("failed to persist session", zap.Error(err))
			return nil, err
		}
	}

	if err := s.persistUsers(ctx); err != nil {
		return nil, err
	}

	u := s.users[idx]
	return &u, nil
}

// RemoveUser deletes the matching user. Removing the session user clears
// the session.
func (s *UserStore) RemoveUser(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}

	s.users = append(s.users[:idx], s.users[idx+1:]...)

	if s.session != nil && s.session.ID == id {
		s.session = nil
		if err := s.repo.ClearSession(ctx); err != nil {
			s.logger.Error("failed to clear session", zap.Error(err))
			return err
		}
	}

	if err := s.persistUsers(ctx); err != nil {
		return err
	}

	s.logger.Info("user removed", zap.String("user_id", id.String()))
	return nil
}

// indexOf must be called with the lock held.
func (s *UserStore) indexOf(id uuid.UUID) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

// indexByEmail must be called with the lock held. Emails compare
// case-insensitively.
func (s *UserStore) indexByEmail(email string) int {
	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, email) {
			return i
		}
	}
	return -1
}

// persistUsers must be called with the lock held.
func (s *UserStore) persistUsers(ctx context.Context) error {
	if err := s.repo.SaveUsers(ctx, s.users); err != nil {
		s.logger.Error("failed to persist users", zap.Error(err))
		return err
	}
	return nil
}
