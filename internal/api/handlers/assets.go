package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mvanholst/portfolio-tracker-backend/internal/api/request"
	"github.com/mvanholst/portfolio-tracker-backend/internal/api/response"
	"github.com/mvanholst/portfolio-tracker-backend/internal/apperrors"
	"github.com/mvanholst/portfolio-tracker-backend/internal/service"
	"github.com/mvanholst/portfolio-tracker-backend/internal/validation"
)

// AssetHandler handles HTTP requests for asset endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the assetService.
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler with the provided service dependency.
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// Assets handles GET requests to list all assets with their open lots.
//
// Endpoint: GET /api/asset
// Response: 200 OK with array of Asset
// Error: 500 Internal Server Error if retrieval fails
func (h *AssetHandler) Assets(w http.ResponseWriter, _ *http.Request) {
	assets, err := h.assetService.GetAssets()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAssets.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, assets)
}

// Summary handles GET requests for the portfolio summary: per-asset
// positions with market value, weight of total and annualized growth.
//
// Endpoint: GET /api/asset/summary
// Response: 200 OK with PortfolioSummary
// Error: 500 Internal Server Error if retrieval fails
func (h *AssetHandler) Summary(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.assetService.Summary()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAssets.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// GetAsset handles GET requests to retrieve a single asset by ticker.
//
// Endpoint: GET /api/asset/{ticker}
// Response: 200 OK with Asset
// Error: 404 Not Found if the ticker is unknown
// Error: 500 Internal Server Error if retrieval fails
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	asset, err := h.assetService.GetAsset(ticker)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAsset.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// CreateAsset handles POST requests to create a new asset.
//
// Endpoint: POST /api/asset
// Request Body: CreateAssetRequest (ticker, name, targetWeight, price)
// Response: 201 Created with Asset
// Error: 400 Bad Request if validation fails
// Error: 409 Conflict if the ticker already exists
// Error: 500 Internal Server Error if creation fails
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAsset(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.assetService.CreateAsset(req.Ticker, req.Name, req.TargetWeight, req.Price)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateTicker) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateTicker.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create asset", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, asset)
}

// SetPrice handles PUT requests to record a manually entered unit price.
//
// Endpoint: PUT /api/asset/{ticker}/price
// Request Body: SetPriceRequest (price)
// Response: 204 No Content
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the ticker is unknown
// Error: 500 Internal Server Error if the update fails
func (h *AssetHandler) SetPrice(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	req, err := parseJSON[request.SetPriceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSetPrice(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	if err := h.assetService.SetPrice(ticker, req.Price); err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update price", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// SetTargetWeight handles PUT requests to set the asset's target weight.
//
// Endpoint: PUT /api/asset/{ticker}/weight
// Request Body: SetTargetWeightRequest (targetWeight)
// Response: 204 No Content
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the ticker is unknown
// Error: 500 Internal Server Error if the update fails
func (h *AssetHandler) SetTargetWeight(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	req, err := parseJSON[request.SetTargetWeightRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSetTargetWeight(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	if err := h.assetService.SetTargetWeight(ticker, req.TargetWeight); err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update target weight", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
