package service

import (
	"context"
	"testing"
	"time"

	"github.com/gatewatch/console-api/internal/domain"
	"github.com/gatewatch/console-api/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRepo(t *testing.T) *repository.StateRepository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.StateRecord{}))
	return repository.NewStateRepository(db)
}

func newTestRegistry(t *testing.T) *GatewayRegistry {
	registry := NewGatewayRegistry(setupTestRepo(t), zap.NewNop())
	require.NoError(t, registry.Load(context.Background()))
	return registry
}

func strPtr(s string) *string { return &s }

func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func TestGatewayRegistry_AddFirstBecomesActive(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	gw, err := registry.Add(ctx, &domain.CreateGatewayRequest{
		Name:       "Office",
		APIBaseURL: "https://10.0.0.1/proxy/network/integration/v1",
		APIKey:     "k1",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.GatewayKindUDM, gw.Kind)
	assert.Equal(t, domain.GatewayStatusOffline, gw.Status)
	assert.WithinDuration(t, time.Now().UTC(), gw.LastUpdated, time.Second)

	active := registry.Active()
	require.NotNil(t, active)
	assert.Equal(t, gw.ID, active.ID)
}

func TestGatewayRegistry_SecondAddKeepsActive(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	first, err := registry.Add(ctx, &domain.CreateGatewayRequest{
		Name: "First", APIBaseURL: "https://10.0.0.1", APIKey: "k1",
	})
	require.NoError(t, err)

	_, err = registry.Add(ctx, &domain.CreateGatewayRequest{
		Name: "Second", APIBaseURL: "https://10.0.0.2", APIKey: "k2", Kind: domain.GatewayKindUCG,
	})
	require.NoError(t, err)

	active := registry.Active()
	require.NotNil(t, active)
	assert.Equal(t, first.ID, active.ID)
	assert.Len(t, registry.List(), 2)
}

func TestGatewayRegistry_UpdateMergesAndRefreshesActive(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	gw, err := registry.Add(ctx, &domain.CreateGatewayRequest{
		Name: "Office", APIBaseURL: "https://10.0.0.1", APIKey: "k1",
	})
	require.NoError(t, err)

	before := gw.LastUpdated
	time.Sleep(5 * time.Millisecond)

	status := domain.GatewayStatusOnline
	updated, err := registry.Update(ctx, gw.ID, &domain.UpdateGatewayRequest{
		Name:   strPtr("Office Renamed"),
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, "Office Renamed", updated.Name)
	assert.Equal(t, domain.GatewayStatusOnline, updated.Status)
	assert.Equal(t, "https://10.0.0.1", updated.APIBaseURL)
	assert.True(t, updated.LastUpdated.After(before))

	// Active selection sees the merge
	active := registry.Active()
	require.NotNil(t, active)
	assert.Equal(t, "Office Renamed", active.Name)
}

func TestGatewayRegistry_UpdateUnknownID(t *testing.T) {
	registry := newTestRegistry(t)

	_, err := registry.Update(context.Background(), newUUID(t), &domain.UpdateGatewayRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGatewayRegistry_RemoveActiveFallsBackToFirstRemaining(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	first, err := registry.Add(ctx, &domain.CreateGatewayRequest{
		Name: "First", APIBaseURL: "https://10.0.0.1", APIKey: "k1",
	})
	require.NoError(t, err)
	second, err := registry.Add(ctx, &domain.CreateGatewayRequest{
		Name: "Second", APIBaseURL: "https://10.0.0.2", APIKey: "k2",
	})
	require.NoError(t, err)

	require.NoError(t, registry.Remove(ctx, first.ID))

	active := registry.Active()
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)
}

func TestGatewayRegistry_RemoveLastClearsActive(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	gw, err := registry.Add(ctx, &domain.CreateGatewayRequest{
		Name: "Only", APIBaseURL: "https://10.0.0.1", APIKey: "k1",
	})
	require.NoError(t, err)

	require.NoError(t, registry.Remove(ctx, gw.ID))

	assert.Nil(t, registry.Active())
	assert.Empty(t, registry.List())
}

func TestGatewayRegistry_RemoveNonActiveKeepsSelection(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	first, err := registry.Add(ctx, &domain.CreateGatewayRequest{
		Name: "First", APIBaseURL: "https://10.0.0.1", APIKey: "k1",
	})
	require.NoError(t, err)
	second, err := registry.Add(ctx, &domain.CreateGatewayRequest{
		Name: "Second", APIBaseURL: "https://10.0.0.2", APIKey: "k2",
	})
	require.NoError(t, err)

	require.NoError(t, registry.Remove(ctx, second.ID))

	active := registry.Active()
	require.NotNil(t, active)
	assert.Equal(t, first.ID, active.ID)
}

func TestGatewayRegistry_ReloadRestoresListAndActive(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	registry := NewGatewayRegistry(repo, zap.NewNop())
	require.NoError(t, registry.Load(ctx))

	first, err := registry.Add(ctx, &domain.CreateGatewayRequest{
		Name: "First", APIBaseURL: "https://10.0.0.1", APIKey: "k1",
	})
	require.NoError(t, err)
	_, err = registry.Add(ctx, &domain.CreateGatewayRequest{
		Name: "Second", APIBaseURL: "https://10.0.0.2", APIKey: "k2",
	})
	require.NoError(t, err)

	// Fresh registry over the same storage
	reloaded := NewGatewayRegistry(repo, zap.NewNop())
	require.NoError(t, reloaded.Load(ctx))

	assert.Len(t, reloaded.List(), 2)
	active := reloaded.Active()
	require.NotNil(t, active)
	assert.Equal(t, first.ID, active.ID)
}

func TestGatewayRegistry_GetUnknownID(t *testing.T) {
	registry := newTestRegistry(t)

	_, err := registry.Get(newUUID(t))
	assert.ErrorIs(t, err, ErrNotFound)
}
