package jobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gatewatch/console-api/internal/config"
	"github.com/gatewatch/console-api/internal/domain"
	"github.com/gatewatch/console-api/internal/repository"
	"github.com/gatewatch/console-api/internal/service"
	"github.com/gatewatch/console-api/internal/unifi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupPollRegistry(t *testing.T) *service.GatewayRegistry {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.StateRecord{}))

	registry := service.NewGatewayRegistry(repository.NewStateRepository(db), zap.NewNop())
	require.NoError(t, registry.Load(context.Background()))
	return registry
}

func TestPollGatewayStatuses(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{}]`))
	}))
	defer healthy.Close()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer failing.Close()

	unreachable := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	unreachableURL := unreachable.URL
	unreachable.Close()

	registry := setupPollRegistry(t)
	ctx := context.Background()

	up, err := registry.Add(ctx, &domain.CreateGatewayRequest{
		Name: "Healthy", APIBaseURL: healthy.URL, APIKey: "k1",
	})
	require.NoError(t, err)
	rejected, err := registry.Add(ctx, &domain.CreateGatewayRequest{
		Name: "Rejected", APIBaseURL: failing.URL, APIKey: "k2",
	})
	require.NoError(t, err)
	down, err := registry.Add(ctx, &domain.CreateGatewayRequest{
		Name: "Down", APIBaseURL: unreachableURL, APIKey: "k3",
	})
	require.NoError(t, err)

	prober := unifi.NewClient(&config.ProbeConfig{TimeoutSeconds: 5})
	pollGatewayStatuses(ctx, registry, prober, zap.NewNop())

	gw, err := registry.Get(up.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GatewayStatusOnline, gw.Status)

	gw, err = registry.Get(rejected.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GatewayStatusError, gw.Status)

	gw, err = registry.Get(down.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GatewayStatusOffline, gw.Status)
}

func TestPollGatewayStatuses_UnchangedStatusSkipsWrite(t *testing.T) {
	unreachable := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	unreachableURL := unreachable.URL
	unreachable.Close()

	registry := setupPollRegistry(t)
	ctx := context.Background()

	gw, err := registry.Add(ctx, &domain.CreateGatewayRequest{
		Name: "Down", APIBaseURL: unreachableURL, APIKey: "k1",
	})
	require.NoError(t, err)
	before := gw.LastUpdated

	prober := unifi.NewClient(&config.ProbeConfig{TimeoutSeconds: 5})
	pollGatewayStatuses(ctx, registry, prober, zap.NewNop())

	// Already offline, so the poll must not touch lastUpdated
	after, err := registry.Get(gw.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GatewayStatusOffline, after.Status)
	assert.True(t, after.LastUpdated.Equal(before))
}
