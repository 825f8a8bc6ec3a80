package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mvanholst/portfolio-tracker-backend/internal/api/response"
	"github.com/mvanholst/portfolio-tracker-backend/internal/apperrors"
	"github.com/mvanholst/portfolio-tracker-backend/internal/service"
)

// TaxHandler handles HTTP requests for financial-year capital-gains summaries.
type TaxHandler struct {
	taxService *service.TaxService
}

// NewTaxHandler creates a new TaxHandler with the provided service dependency.
func NewTaxHandler(taxService *service.TaxService) *TaxHandler {
	return &TaxHandler{
		taxService: taxService,
	}
}

// FinancialYearSummary handles GET requests for the capital-gains summary of
// one financial year. The path year is the starting year: 2023 means the
// year from 1 July 2023 to 30 June 2024.
//
// Endpoint: GET /api/tax/{fyStartYear}
// Response: 200 OK with FYSummary
// Error: 400 Bad Request if the year is not a plausible starting year
// Error: 500 Internal Server Error if retrieval fails
func (h *TaxHandler) FinancialYearSummary(w http.ResponseWriter, r *http.Request) {
	yearParam := chi.URLParam(r, "fyStartYear")

	fyStartYear, err := strconv.Atoi(yearParam)
	if err != nil || fyStartYear < 1900 || fyStartYear > 2200 {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidFinancialYear.Error(), yearParam)
		return
	}

	summary, err := h.taxService.FinancialYearSummary(fyStartYear)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetTaxSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}
