package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gatewatch/console-api/internal/config"
	"github.com/gatewatch/console-api/internal/domain"
	"github.com/gatewatch/console-api/internal/repository"
	"github.com/gatewatch/console-api/internal/service"
	"github.com/gatewatch/console-api/internal/unifi"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupGatewayHandler(t *testing.T) (*GatewayHandler, *service.GatewayRegistry) {
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

	prober := unifi.NewClient(&config.ProbeConfig{TimeoutSeconds: 5})
	return NewGatewayHandler(registry, prober, zap.NewNop()), registry
}

func gatewayTestRouter(h *GatewayHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/gateways", h.ListGateways)
	r.Post("/gateways", h.CreateGateway)
	r.Post("/gateways/test", h.TestConnection)
	r.Patch("/gateways/{id}", h.UpdateGateway)
	r.Delete("/gateways/{id}", h.DeleteGateway)
	r.Post("/gateways/{id}/activate", h.ActivateGateway)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateGateway_NormalizesStoredURL(t *testing.T) {
	h, registry := setupGatewayHandler(t)
	router := gatewayTestRouter(h)

	rec := doJSON(t, router, http.MethodPost, "/gateways", map[string]string{
		"name":       "Office",
		"apiBaseUrl": "https://10.0.0.1/",
		"apiKey":     "k1",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var gw domain.Gateway
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gw))
	assert.Equal(t, "https://10.0.0.1/proxy/network/integration/v1", gw.APIBaseURL)
	assert.Equal(t, domain.GatewayStatusOffline, gw.Status)

	stored := registry.List()
	require.Len(t, stored, 1)
	assert.Equal(t, gw.APIBaseURL, stored[0].APIBaseURL)
}

func TestCreateGateway_MissingFields(t *testing.T) {
	h, _ := setupGatewayHandler(t)
	router := gatewayTestRouter(h)

	rec := doJSON(t, router, http.MethodPost, "/gateways", map[string]string{
		"name": "Office",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr domain.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Contains(t, apiErr.Detail, "required")
}

func TestCreateGateway_InvalidURL(t *testing.T) {
	h, _ := setupGatewayHandler(t)
	router := gatewayTestRouter(h)

	rec := doJSON(t, router, http.MethodPost, "/gateways", map[string]string{
		"name":       "Office",
		"apiBaseUrl": "not a url",
		"apiKey":     "k1",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr domain.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "Invalid API URL.", apiErr.Detail)
}

func TestListGateways_ReportsActiveID(t *testing.T) {
	h, registry := setupGatewayHandler(t)
	router := gatewayTestRouter(h)

	created, err := registry.Add(context.Background(), &domain.CreateGatewayRequest{
		Name: "Office", APIBaseURL: "https://10.0.0.1", APIKey: "k1",
	})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodGet, "/gateways", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.GatewayListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Gateways, 1)
	require.NotNil(t, resp.ActiveID)
	assert.Equal(t, created.ID, *resp.ActiveID)
}

func TestUpdateGateway_NotFound(t *testing.T) {
	h, _ := setupGatewayHandler(t)
	router := gatewayTestRouter(h)

	rec := doJSON(t, router, http.MethodPatch, "/gateways/"+uuid.NewString(), map[string]string{
		"name": "Renamed",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateGateway_InvalidID(t *testing.T) {
	h, _ := setupGatewayHandler(t)
	router := gatewayTestRouter(h)

	rec := doJSON(t, router, http.MethodPatch, "/gateways/not-a-uuid", map[string]string{
		"name": "Renamed",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteGateway(t *testing.T) {
	h, registry := setupGatewayHandler(t)
	router := gatewayTestRouter(h)

	gw, err := registry.Add(context.Background(), &domain.CreateGatewayRequest{
		Name: "Office", APIBaseURL: "https://10.0.0.1", APIKey: "k1",
	})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodDelete, "/gateways/"+gw.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, registry.List())
}

func TestActivateGateway(t *testing.T) {
	h, registry := setupGatewayHandler(t)
	router := gatewayTestRouter(h)
	ctx := context.Background()

	_, err := registry.Add(ctx, &domain.CreateGatewayRequest{
		Name: "First", APIBaseURL: "https://10.0.0.1", APIKey: "k1",
	})
	require.NoError(t, err)
	second, err := registry.Add(ctx, &domain.CreateGatewayRequest{
		Name: "Second", APIBaseURL: "https://10.0.0.2", APIKey: "k2",
	})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPost, "/gateways/"+second.ID.String()+"/activate", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	active := registry.Active()
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)
}

func TestActivateGateway_NotFound(t *testing.T) {
	h, _ := setupGatewayHandler(t)
	router := gatewayTestRouter(h)

	rec := doJSON(t, router, http.MethodPost, "/gateways/"+uuid.NewString()+"/activate", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTestConnection_MissingFields(t *testing.T) {
	h, _ := setupGatewayHandler(t)
	router := gatewayTestRouter(h)

	rec := doJSON(t, router, http.MethodPost, "/gateways/test", map[string]string{
		"apiBaseUrl": "https://10.0.0.1",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr domain.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "API URL and API key are required for the test.", apiErr.Detail)
}

func TestTestConnection_ReportsProbeOutcome(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{}]`))
	}))
	defer backend.Close()

	h, _ := setupGatewayHandler(t)
	router := gatewayTestRouter(h)

	rec := doJSON(t, router, http.MethodPost, "/gateways/test", map[string]string{
		"apiBaseUrl": backend.URL,
		"apiKey":     "k1",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var result unifi.ProbeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.SiteCount)
}

func TestTestConnection_FailureStillRespondsOK(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer backend.Close()

	h, _ := setupGatewayHandler(t)
	router := gatewayTestRouter(h)

	rec := doJSON(t, router, http.MethodPost, "/gateways/test", map[string]string{
		"apiBaseUrl": backend.URL,
		"apiKey":     "bad-key",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var result unifi.ProbeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Equal(t, http.StatusForbidden, result.StatusCode)
}
