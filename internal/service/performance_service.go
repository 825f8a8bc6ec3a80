package service

import (
	"math"
	"time"

	"github.com/mvanholst/portfolio-tracker-backend/internal/model"
	"github.com/mvanholst/portfolio-tracker-backend/internal/repository"
)

// hoursPerYear converts elapsed time to 365.25-day years, matching the
// holding-period rule in the ledger.
const hoursPerYear = 24 * 365.25

// PerformanceService estimates per-asset annualized growth. The estimate is
// a single-rate CAGR since first contribution: multiple contributions at
// different times are not separately compounded, an accepted approximation
// rather than a money- or time-weighted return.
type PerformanceService struct {
	assetRepo *repository.AssetRepository
}

// NewPerformanceService creates a new PerformanceService with the provided repository dependency.
func NewPerformanceService(assetRepo *repository.AssetRepository) *PerformanceService {
	return &PerformanceService{assetRepo: assetRepo}
}

// CAGR returns the annualized growth rate of the asset's market value over
// its cumulative invested capital since the first contribution.
//
// Guards: 0 when the asset has no contributions yet or the elapsed time is
// not positive; -1 ("total loss") when invested capital remains but the
// position is worth nothing.
func (s *PerformanceService) CAGR(asset model.Asset, now time.Time) float64 {
	if asset.FirstContributionDate == nil || asset.Invested <= 0 {
		return 0
	}
	years := now.Sub(*asset.FirstContributionDate).Hours() / hoursPerYear
	if years <= 0 {
		return 0
	}
	value := asset.MarketValue()
	if value <= 0 {
		return -1
	}
	return math.Pow(value/asset.Invested, 1/years) - 1
}

// AssetGrowth is one asset's annualized growth estimate.
type AssetGrowth struct {
	Ticker string  `json:"ticker"`
	CAGR   float64 `json:"cagr"`
}

// GrowthReport computes the CAGR of every asset as of now.
func (s *PerformanceService) GrowthReport() ([]AssetGrowth, error) {
	assets, err := s.assetRepo.GetAssets()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	report := make([]AssetGrowth, len(assets))
	for i, asset := range assets {
		report[i] = AssetGrowth{Ticker: asset.Ticker, CAGR: s.CAGR(asset, now)}
	}
	return report, nil
}
