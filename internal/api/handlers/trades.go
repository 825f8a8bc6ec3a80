package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mvanholst/portfolio-tracker-backend/internal/api/request"
	"github.com/mvanholst/portfolio-tracker-backend/internal/api/response"
	"github.com/mvanholst/portfolio-tracker-backend/internal/apperrors"
	"github.com/mvanholst/portfolio-tracker-backend/internal/model"
	"github.com/mvanholst/portfolio-tracker-backend/internal/service"
	"github.com/mvanholst/portfolio-tracker-backend/internal/validation"
)

// TradeHandler handles HTTP requests for buy and sell endpoints.
type TradeHandler struct {
	tradeService *service.TradeService
}

// NewTradeHandler creates a new TradeHandler with the provided service dependency.
func NewTradeHandler(tradeService *service.TradeService) *TradeHandler {
	return &TradeHandler{
		tradeService: tradeService,
	}
}

// TradeResponse reports whether the trade applied and, when it did, the
// transaction it produced. Applied=false is not an error: the core treats
// unfillable or invalid trades as deliberate no-ops, and Reason tells the
// user why nothing happened.
type TradeResponse struct {
	Applied     bool               `json:"applied"`
	Reason      string             `json:"reason,omitempty"`
	Transaction *model.Transaction `json:"transaction,omitempty"`
}

// Buy handles POST requests to buy an amount of an asset at its current price.
//
// Endpoint: POST /api/asset/{ticker}/buy
// Request Body: TradeRequest (amount in AUD)
// Response: 200 OK with TradeResponse (applied=false when the asset has no price)
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the ticker is unknown
// Error: 500 Internal Server Error if recording fails
func (h *TradeHandler) Buy(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, h.tradeService.Buy, "asset has no price set")
}

// Sell handles POST requests to sell an amount of an asset at its current price.
// Sales are all-or-nothing; insufficient holdings apply nothing.
//
// Endpoint: POST /api/asset/{ticker}/sell
// Request Body: TradeRequest (amount in AUD)
// Response: 200 OK with TradeResponse (applied=false when unfillable)
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the ticker is unknown
// Error: 500 Internal Server Error if recording fails
func (h *TradeHandler) Sell(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, h.tradeService.Sell, "insufficient units at the current price")
}

func (h *TradeHandler) trade(
	w http.ResponseWriter,
	r *http.Request,
	record func(ctx context.Context, ticker string, amount float64) (model.Transaction, bool, error),
	noOpReason string,
) {
	ticker := chi.URLParam(r, "ticker")

	req, err := parseJSON[request.TradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateTrade(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	txn, applied, err := record(r.Context(), ticker, req.Amount)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to record trade", err.Error())
		return
	}

	if !applied {
		response.RespondJSON(w, http.StatusOK, TradeResponse{Applied: false, Reason: noOpReason})
		return
	}
	response.RespondJSON(w, http.StatusOK, TradeResponse{Applied: true, Transaction: &txn})
}
