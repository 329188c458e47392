package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gatewatch/console-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixed state record keys. One array per entity type, one optional object
// for the current session.
const (
	StateKeyGateways = "gateways"
	StateKeyUsers    = "users"
	StateKeySession  = "session"
)

// StateRepository persists whole collections as JSON documents keyed under
// fixed names. Every save overwrites the full record, which keeps the
// last-writer-wins semantics of the browser storage it replaces.
type StateRepository struct {
	db *gorm.DB
}

func NewStateRepository(db *gorm.DB) *StateRepository {
	return &StateRepository{db: db}
}

// LoadGateways returns the persisted gateway list, or nil when no record
// exists yet.
func (r *StateRepository) LoadGateways(ctx context.Context) ([]domain.Gateway, error) {
	var gateways []domain.Gateway
	found, err := r.load(ctx, StateKeyGateways, &gateways)
	if err != nil || !found {
		return nil, err
	}
	return gateways, nil
}

// SaveGateways overwrites the persisted gateway list.
func (r *StateRepository) SaveGateways(ctx context.Context, gateways []domain.Gateway) error {
	return r.save(ctx, StateKeyGateways, gateways)
}

// LoadUsers returns the persisted user list, or nil when no record exists.
func (r *StateRepository) LoadUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	found, err := r.load(ctx, StateKeyUsers, &users)
	if err != nil || !found {
		return nil, err
	}
	return users, nil
}

// SaveUsers overwrites the persisted user list.
func (r *StateRepository) SaveUsers(ctx context.Context, users []domain.User) error {
	return r.save(ctx, StateKeyUsers, users)
}

// LoadSession returns the persisted session user, or nil when logged out.
func (r *StateRepository) LoadSession(ctx context.Context) (*domain.User, error) {
	var user domain.User
	found, err := r.load(ctx, StateKeySession, &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

// SaveSession overwrites the persisted session user.
func (r *StateRepository) SaveSession(ctx context.Context, user *domain.User) error {
	return r.save(ctx, StateKeySession, user)
}

// ClearSession removes the session record entirely.
func (r *StateRepository) ClearSession(ctx context.Context) error {
	err := r.db.WithContext(ctx).Delete(&domain.StateRecord{}, "key = ?", StateKeySession).Error
	if err != nil {
		return fmt.Errorf("failed to clear session record: %w", err)
	}
	return nil
}

func (r *StateRepository) load(ctx context.Context, key string, target interface{}) (bool, error) {
	var record domain.StateRecord
	err := r.db.WithContext(ctx).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load state record %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(record.Value), target); err != nil {
		return false, fmt.Errorf("failed to decode state record %q: %w", key, err)
	}
	return true, nil
}

func (r *StateRepository) save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode state record %q: %w", key, err)
	}

	record := domain.StateRecord{Key: key, Value: string(data)}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save state record %q: %w", key, err)
	}
	return nil
}
