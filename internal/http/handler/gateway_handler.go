package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gatewatch/console-api/internal/domain"
	"github.com/gatewatch/console-api/internal/service"
	"github.com/gatewatch/console-api/internal/unifi"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GatewayHandler handles HTTP requests for the gateway registry and the
// connectivity probe.
type GatewayHandler struct {
	registry *service.GatewayRegistry
	prober   *unifi.Client
	logger   *zap.Logger
}

// NewGatewayHandler creates a new GatewayHandler
func NewGatewayHandler(registry *service.GatewayRegistry, prober *unifi.Client, logger *zap.Logger) *GatewayHandler {
	return &GatewayHandler{
		registry: registry,
		prober:   prober,
		logger:   logger,
	}
}

// ListGateways returns all registered gateways plus the active selection.
func (h *GatewayHandler) ListGateways(w http.ResponseWriter, r *http.Request) {
	resp := domain.GatewayListResponse{
		Gateways: h.registry.List(),
	}
	if active := h.registry.Active(); active != nil {
		resp.ActiveID = &active.ID
	}
	respondJSON(w, http.StatusOK, resp)
}

// CreateGateway registers a new gateway endpoint. The base URL is
// canonicalized before it is stored, so every persisted gateway carries the
// integration path.
func (h *GatewayHandler) CreateGateway(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateGatewayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if ferr := domain.ValidateGatewayForm(req.Name, req.APIBaseURL, req.APIKey); ferr != nil {
		respondWithError(w, http.StatusBadRequest, ferr.Message)
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	req.APIBaseURL = unifi.NormalizeAPIURL(req.APIBaseURL)

	gw, err := h.registry.Add(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to add gateway", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to add gateway")
		return
	}

	respondJSON(w, http.StatusCreated, gw)
}

// UpdateGateway merges the supplied fields into a gateway.
func (h *GatewayHandler) UpdateGateway(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid gateway ID: must be a valid UUID")
		return
	}

	var req domain.UpdateGatewayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	if req.APIBaseURL != nil {
		normalized := unifi.NormalizeAPIURL(*req.APIBaseURL)
		req.APIBaseURL = &normalized
	}

	gw, err := h.registry.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Gateway not found")
			return
		}
		h.logger.Error("failed to update gateway", zap.Error(err), zap.String("gateway_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to update gateway")
		return
	}

	respondJSON(w, http.StatusOK, gw)
}

// DeleteGateway removes a gateway from the registry.
func (h *GatewayHandler) DeleteGateway(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid gateway ID: must be a valid UUID")
		return
	}

	if err := h.registry.Remove(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Gateway not found")
			return
		}
		h.logger.Error("failed to remove gateway", zap.Error(err), zap.String("gateway_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to remove gateway")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// ActivateGateway makes the given gateway the active selection.
func (h *GatewayHandler) ActivateGateway(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid gateway ID: must be a valid UUID")
		return
	}

	gw, err := h.registry.Get(id)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Gateway not found")
		return
	}

	h.registry.SetActive(*gw)
	respondJSON(w, http.StatusOK, gw)
}

// TestConnection probes the given endpoint once and reports the outcome.
// Probe failures are part of the outcome, not API errors: the response is
// always 200 once the form fields pass validation.
func (h *GatewayHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	var req domain.TestConnectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.APIBaseURL == "" || req.APIKey == "" {
		respondWithError(w, http.StatusBadRequest, "API URL and API key are required for the test.")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	result := h.prober.ProbeSites(r.Context(), req.APIBaseURL, req.APIKey)
	if !result.Success {
		h.logger.Info("connection test failed",
			zap.Int("status_code", result.StatusCode),
			zap.String("message", result.Message),
		)
	}

	respondJSON(w, http.StatusOK, result)
}
