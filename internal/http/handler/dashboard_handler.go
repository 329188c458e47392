package handler

import (
	"net/http"

	"github.com/gatewatch/console-api/internal/service"
	"go.uber.org/zap"
)

// DashboardHandler serves the mocked analytics views.
type DashboardHandler struct {
	dashboard *service.DashboardService
	logger    *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboard *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		logger:    logger,
	}
}

// Overview returns the headline stats and charts.
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dashboard.Overview())
}

// Traffic returns the upload/download series.
func (h *DashboardHandler) Traffic(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dashboard.Traffic())
}

// Blocks returns the blocked threat report.
func (h *DashboardHandler) Blocks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dashboard.Blocks())
}

// Logs returns the security log entries.
func (h *DashboardHandler) Logs(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dashboard.Logs())
}

// Devices returns the connected client report.
func (h *DashboardHandler) Devices(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dashboard.Devices())
}
