package service

import (
	"time"

	"github.com/mvanholst/portfolio-tracker-backend/internal/model"
	"github.com/mvanholst/portfolio-tracker-backend/internal/repository"
)

// AssetService handles asset lifecycle and valuation views.
type AssetService struct {
	assetRepo          *repository.AssetRepository
	performanceService *PerformanceService
}

// NewAssetService creates a new AssetService with the provided dependencies.
func NewAssetService(assetRepo *repository.AssetRepository, performanceService *PerformanceService) *AssetService {
	return &AssetService{
		assetRepo:          assetRepo,
		performanceService: performanceService,
	}
}

// GetAssets retrieves all assets with their open lots.
func (s *AssetService) GetAssets() ([]model.Asset, error) {
	return s.assetRepo.GetAssets()
}

// GetAsset retrieves a single asset by ticker.
func (s *AssetService) GetAsset(ticker string) (model.Asset, error) {
	return s.assetRepo.GetAsset(ticker)
}

// CreateAsset creates a new asset with no holdings. Units, invested and lots
// only ever change through recorded trades or snapshot import.
func (s *AssetService) CreateAsset(ticker, name string, targetWeight, price float64) (model.Asset, error) {
	asset := model.Asset{
		Ticker:       ticker,
		Name:         name,
		TargetWeight: targetWeight,
		Price:        price,
	}
	if err := s.assetRepo.InsertAsset(asset); err != nil {
		return model.Asset{}, err
	}
	return asset, nil
}

// SetPrice records a manually entered unit price; it stays authoritative
// until the next manual update.
func (s *AssetService) SetPrice(ticker string, price float64) error {
	return s.assetRepo.UpdatePrice(ticker, price)
}

// SetTargetWeight sets the asset's desired share of total market value.
// Weights need not sum to one across assets; the planner normalizes.
func (s *AssetService) SetTargetWeight(ticker string, weight float64) error {
	return s.assetRepo.UpdateTargetWeight(ticker, weight)
}

// Summary returns the portfolio's current positions with derived valuation
// figures: market value, current weight of total and annualized growth.
func (s *AssetService) Summary() (model.PortfolioSummary, error) {
	assets, err := s.assetRepo.GetAssets()
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	summary := model.PortfolioSummary{Positions: make([]model.Position, len(assets))}
	for _, asset := range assets {
		summary.TotalValue += asset.MarketValue()
		summary.TotalInvested += asset.Invested
	}

	now := time.Now().UTC()
	for i, asset := range assets {
		currentWeight := 0.0
		if summary.TotalValue > 0 {
			currentWeight = asset.MarketValue() / summary.TotalValue
		}
		summary.Positions[i] = model.Position{
			Ticker:        asset.Ticker,
			Name:          asset.Name,
			Units:         asset.Units,
			Price:         asset.Price,
			Invested:      asset.Invested,
			MarketValue:   asset.MarketValue(),
			CurrentWeight: currentWeight,
			TargetWeight:  asset.TargetWeight,
			CAGR:          s.performanceService.CAGR(asset, now),
		}
	}

	return summary, nil
}
