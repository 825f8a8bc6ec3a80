package handlers

import (
	"net/http"

	"github.com/mvanholst/portfolio-tracker-backend/internal/api/request"
	"github.com/mvanholst/portfolio-tracker-backend/internal/api/response"
	"github.com/mvanholst/portfolio-tracker-backend/internal/apperrors"
	"github.com/mvanholst/portfolio-tracker-backend/internal/model"
	"github.com/mvanholst/portfolio-tracker-backend/internal/service"
	"github.com/mvanholst/portfolio-tracker-backend/internal/validation"
)

// SettingsHandler handles HTTP requests for planner and rebalance settings.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler with the provided service dependency.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// Settings handles GET requests for the current settings.
//
// Endpoint: GET /api/settings
// Response: 200 OK with Settings
// Error: 500 Internal Server Error if retrieval fails
func (h *SettingsHandler) Settings(w http.ResponseWriter, _ *http.Request) {
	settings, err := h.settingsService.GetSettings()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSettings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT requests to replace the settings.
//
// Endpoint: PUT /api/settings
// Request Body: UpdateSettingsRequest
// Response: 200 OK with the saved Settings
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if saving fails
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateSettingsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateSettings(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	settings := model.Settings{
		Budget:            req.Budget,
		FeeFlat:           req.FeeFlat,
		BufferPct:         req.BufferPct,
		DriftThresholdPct: req.DriftThresholdPct,
		RebalanceEnabled:  req.RebalanceEnabled,
	}
	if err := h.settingsService.UpdateSettings(settings); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to save settings", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, settings)
}
