package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gatewatch/console-api/internal/domain"
	"github.com/gatewatch/console-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GatewayRegistry owns the list of configured gateway endpoints and the
// single active selection. At most one gateway is active at any time, and
// the active gateway is always a member of the current list (except through
// SetActive, where membership is the caller's responsibility).
//
// Every mutation persists the full list as its last step. The in-memory
// state is updated first, so a persistence failure leaves the memory and
// storage views briefly divergent; the next successful mutation reconciles
// them (optimistic, matching the store this replaces).
type GatewayRegistry struct {
	repo   *repository.StateRepository
	logger *zap.Logger

	mu       sync.RWMutex
	gateways []domain.Gateway
	active   *domain.Gateway
}

func NewGatewayRegistry(repo *repository.StateRepository, logger *zap.Logger) *GatewayRegistry {
	return &GatewayRegistry{
		repo:   repo,
		logger: logger,
	}
}

// Load reads the persisted gateway list. An absent record leaves the list
// empty; a non-empty list makes its first entry active.
func (s *GatewayRegistry) Load(ctx context.Context) error {
	gateways, err := s.repo.LoadGateways(ctx)
	if err != nil {
		return fmt.Errorf("failed to load gateways: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.gateways = gateways
	if len(gateways) > 0 {
		gw := gateways[0]
		s.active = &gw
	}

	s.logger.Info("gateway registry loaded", zap.Int("count", len(gateways)))
	return nil
}

// List returns a copy of the registered gateways.
func (s *GatewayRegistry) List() []domain.Gateway {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Gateway, len(s.gateways))
	copy(out, s.gateways)
	return out
}

// Active returns a copy of the active gateway, or nil when none is selected.
func (s *GatewayRegistry) Active() *domain.Gateway {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.active == nil {
		return nil
	}
	gw := *s.active
	return &gw
}

// Add registers a new gateway. Status always starts offline; the new entry
// becomes active only when nothing was active before.
func (s *GatewayRegistry) Add(ctx context.Context, req *domain.CreateGatewayRequest) (*domain.Gateway, error) {
	kind := req.Kind
	if kind == "" {
		kind = domain.GatewayKindUDM
	}

	gw := domain.Gateway{
		ID:          uuid.New(),
		Name:        req.Name,
		APIBaseURL:  req.APIBaseURL,
		APIKey:      req.APIKey,
		Kind:        kind,
		Status:      domain.GatewayStatusOffline,
		LastUpdated: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.gateways = append(s.gateways, gw)
	if s.active == nil {
		active := gw
		s.active = &active
	}

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("gateway added",
		zap.String("gateway_id", gw.ID.String()),
		zap.String("name", gw.Name),
	)
	return &gw, nil
}

// Update merges the supplied fields into the matching gateway and refreshes
// lastUpdated. When the updated gateway is the active one, the active
// reference receives the same merge.
func (s *GatewayRegistry) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateGatewayRequest) (*domain.Gateway, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	merged := mergeGateway(s.gateways[idx], req)
	merged.LastUpdated = time.Now().UTC()
	s.gateways[idx] = merged

	if s.active != nil && s.active.ID == id {
		active := merged
		s.active = &active
	}

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	gw := merged
	return &gw, nil
}

// Remove deletes the matching gateway. Removing the active gateway falls
// back to the first remaining entry, or clears the selection when the list
// is empty afterwards.
func (s *GatewayRegistry) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}

	s.gateways = append(s.gateways[:idx], s.gateways[idx+1:]...)

	if s.active != nil && s.active.ID == id {
		if len(s.gateways) > 0 {
			active := s.gateways[0]
			s.active = &active
		} else {
			s.active = nil
		}
	}

	if err := s.persist(ctx); err != nil {
		return err
	}

	s.logger.Info("gateway removed", zap.String("gateway_id", id.String()))
	return nil
}

// SetActive replaces the active selection unconditionally. It does not
// check that the gateway is a current list member.
func (s *GatewayRegistry) SetActive(gw domain.Gateway) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = &gw
}

// Get returns a copy of the gateway with the given id.
func (s *GatewayRegistry) Get(id uuid.UUID) (*domain.Gateway, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	gw := s.gateways[idx]
	return &gw, nil
}

// indexOf must be called with the lock held.
func (s *GatewayRegistry) indexOf(id uuid.UUID) int {
	for i := range s.gateways {
		if s.gateways[i].ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with the lock held.
func (s *GatewayRegistry) persist(ctx context.Context) error {
	if err := s.repo.SaveGateways(ctx, s.gateways); err != nil {
		s.logger.Error("failed to persist gateways", zap.Error(err))
		return err
	}
	return nil
}

func mergeGateway(gw domain.Gateway, req *domain.UpdateGatewayRequest) domain.Gateway {
	if req.Name != nil {
		gw.Name = *req.Name
	}
	if req.APIBaseURL != nil {
		gw.APIBaseURL = *req.APIBaseURL
	}
	if req.APIKey != nil {
		gw.APIKey = *req.APIKey
	}
	if req.Kind != nil {
		gw.Kind = *req.Kind
	}
	if req.Status != nil {
		gw.Status = *req.Status
	}
	return gw
}
