package handlers

import (
	"net/http"

	"github.com/mvanholst/portfolio-tracker-backend/internal/api/response"
	"github.com/mvanholst/portfolio-tracker-backend/internal/service"
)

// PerformanceHandler handles HTTP requests for per-asset growth estimates.
type PerformanceHandler struct {
	performanceService *service.PerformanceService
}

// NewPerformanceHandler creates a new PerformanceHandler with the provided service dependency.
func NewPerformanceHandler(performanceService *service.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{
		performanceService: performanceService,
	}
}

// Growth handles GET requests for the annualized growth (CAGR) of every
// asset since its first contribution. A value of -1 means total loss; 0 is
// returned for assets without contributions.
//
// Endpoint: GET /api/performance
// Response: 200 OK with array of AssetGrowth
// Error: 500 Internal Server Error if retrieval fails
func (h *PerformanceHandler) Growth(w http.ResponseWriter, _ *http.Request) {
	report, err := h.performanceService.GrowthReport()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute growth", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}
