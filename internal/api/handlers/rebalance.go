package handlers

import (
	"net/http"

	"github.com/mvanholst/portfolio-tracker-backend/internal/api/response"
	"github.com/mvanholst/portfolio-tracker-backend/internal/model"
	"github.com/mvanholst/portfolio-tracker-backend/internal/service"
)

// RebalanceHandler handles HTTP requests for drift detection.
type RebalanceHandler struct {
	rebalanceService *service.RebalanceService
}

// NewRebalanceHandler creates a new RebalanceHandler with the provided service dependency.
func NewRebalanceHandler(rebalanceService *service.RebalanceService) *RebalanceHandler {
	return &RebalanceHandler{
		rebalanceService: rebalanceService,
	}
}

// Drift handles GET requests for the rebalance drift report: assets whose
// current weight deviates from target beyond the configured threshold,
// largest drift first. Empty when rebalance checking is disabled.
//
// Endpoint: GET /api/rebalance
// Response: 200 OK with array of DriftEntry
// Error: 500 Internal Server Error if analysis fails
func (h *RebalanceHandler) Drift(w http.ResponseWriter, _ *http.Request) {
	entries, err := h.rebalanceService.DriftReport()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to analyze drift", err.Error())
		return
	}

	if entries == nil {
		entries = []model.DriftEntry{}
	}
	response.RespondJSON(w, http.StatusOK, entries)
}
