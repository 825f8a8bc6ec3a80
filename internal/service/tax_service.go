package service

import (
	"time"

	"github.com/mvanholst/portfolio-tracker-backend/internal/model"
	"github.com/mvanholst/portfolio-tracker-backend/internal/repository"
)

// TaxService aggregates realized capital gains per Australian financial year
// (1 July to 30 June).
type TaxService struct {
	transactionRepo *repository.TransactionRepository
}

// NewTaxService creates a new TaxService with the provided repository dependency.
func NewTaxService(transactionRepo *repository.TransactionRepository) *TaxService {
	return &TaxService{transactionRepo: transactionRepo}
}

// FinancialYearWindow returns the inclusive UTC window for the financial
// year starting 1 July of fyStartYear: from 1 July 00:00:00.000 to 30 June
// 23:59:59.999 of the following year.
func FinancialYearWindow(fyStartYear int) (start, end time.Time) {
	start = time.Date(fyStartYear, time.July, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(fyStartYear+1, time.June, 30, 23, 59, 59, 999000000, time.UTC)
	return start, end
}

// SummarizeFinancialYear aggregates the SELL transactions whose date falls
// inside the financial year. Losses are not netted: grossGain sums only
// positive per-sale gains, and discountGain sums only positive post-discount
// figures. Pure aggregation, no side effects.
func (s *TaxService) SummarizeFinancialYear(transactions []model.Transaction, fyStartYear int) model.FYSummary {
	start, end := FinancialYearWindow(fyStartYear)

	summary := model.FYSummary{FYStartYear: fyStartYear}
	for _, txn := range transactions {
		if txn.Kind != model.KindSell {
			continue
		}
		if txn.Date.Before(start) || txn.Date.After(end) {
			continue
		}
		summary.EventCount++
		if txn.Gain > 0 {
			summary.GrossGain += txn.Gain
		}
		if txn.DiscountGain > 0 {
			summary.DiscountGain += txn.DiscountGain
		}
	}
	return summary
}

// FinancialYearSummary loads the financial year's sells from the log and
// summarizes them.
func (s *TaxService) FinancialYearSummary(fyStartYear int) (model.FYSummary, error) {
	start, end := FinancialYearWindow(fyStartYear)
	sells, err := s.transactionRepo.GetSellsBetween(start, end)
	if err != nil {
		return model.FYSummary{}, err
	}
	return s.SummarizeFinancialYear(sells, fyStartYear), nil
}
