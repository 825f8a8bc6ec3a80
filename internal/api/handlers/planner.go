package handlers

import (
	"net/http"

	"github.com/mvanholst/portfolio-tracker-backend/internal/api/request"
	"github.com/mvanholst/portfolio-tracker-backend/internal/api/response"
	"github.com/mvanholst/portfolio-tracker-backend/internal/service"
	"github.com/mvanholst/portfolio-tracker-backend/internal/validation"
)

// PlannerHandler handles HTTP requests for allocation planning endpoints.
type PlannerHandler struct {
	plannerService *service.PlannerService
}

// NewPlannerHandler creates a new PlannerHandler with the provided service dependency.
func NewPlannerHandler(plannerService *service.PlannerService) *PlannerHandler {
	return &PlannerHandler{
		plannerService: plannerService,
	}
}

// Plan handles POST requests to preview the allocation of the configured (or
// overridden) budget across target weights. Nothing is committed.
//
// Endpoint: POST /api/planner/plan
// Request Body: PlanRequest (budget, feeFlat, bufferPct; all optional)
// Response: 200 OK with Plan
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if planning fails
func (h *PlannerHandler) Plan(w http.ResponseWriter, r *http.Request) {
	overrides, ok := h.parseOverrides(w, r)
	if !ok {
		return
	}

	plan, err := h.plannerService.Plan(overrides)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to build plan", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, plan)
}

// Allocate handles POST requests to commit the plan: a buy is recorded per
// planned amount, restricted to assets that have a price.
//
// Endpoint: POST /api/planner/allocate
// Request Body: PlanRequest (budget, feeFlat, bufferPct; all optional)
// Response: 200 OK with AllocationResult
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if committing fails
func (h *PlannerHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	overrides, ok := h.parseOverrides(w, r)
	if !ok {
		return
	}

	result, err := h.plannerService.AllocateNow(r.Context(), overrides)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to allocate", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

func (h *PlannerHandler) parseOverrides(w http.ResponseWriter, r *http.Request) (service.PlanOverrides, bool) {
	req, err := parseJSON[request.PlanRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return service.PlanOverrides{}, false
	}

	if err := validation.ValidatePlan(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return service.PlanOverrides{}, false
	}

	return service.PlanOverrides{
		Budget:    req.Budget,
		FeeFlat:   req.FeeFlat,
		BufferPct: req.BufferPct,
	}, true
}
