package service

import (
	"math"
	"sort"

	"github.com/mvanholst/portfolio-tracker-backend/internal/model"
	"github.com/mvanholst/portfolio-tracker-backend/internal/repository"
)

// RebalanceService detects assets whose current portfolio weight has drifted
// from their target weight beyond a configurable threshold.
type RebalanceService struct {
	assetRepo       *repository.AssetRepository
	settingsService *SettingsService
}

// NewRebalanceService creates a new RebalanceService with the provided dependencies.
func NewRebalanceService(assetRepo *repository.AssetRepository, settingsService *SettingsService) *RebalanceService {
	return &RebalanceService{
		assetRepo:       assetRepo,
		settingsService: settingsService,
	}
}

// Analyze computes per-asset drift against target weights and returns the
// assets whose absolute drift meets or exceeds thresholdPct, largest drift
// first. Ties keep input order (stable sort). Returns empty when disabled or
// when the portfolio has no market value. Pure computation, deterministic on
// unchanged input.
func (s *RebalanceService) Analyze(assets []model.Asset, totalMarketValue, thresholdPct float64, enabled bool) []model.DriftEntry {
	if !enabled || totalMarketValue <= 0 {
		return nil
	}

	var entries []model.DriftEntry
	for _, asset := range assets {
		currentWeight := asset.MarketValue() / totalMarketValue
		driftPct := (currentWeight - asset.TargetWeight) * 100
		if math.Abs(driftPct) < thresholdPct {
			continue
		}
		entries = append(entries, model.DriftEntry{
			Ticker:        asset.Ticker,
			CurrentWeight: currentWeight,
			TargetWeight:  asset.TargetWeight,
			DriftPct:      driftPct,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return math.Abs(entries[i].DriftPct) > math.Abs(entries[j].DriftPct)
	})
	return entries
}

// DriftReport loads the current assets and settings and analyzes drift.
func (s *RebalanceService) DriftReport() ([]model.DriftEntry, error) {
	assets, err := s.assetRepo.GetAssets()
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsService.GetSettings()
	if err != nil {
		return nil, err
	}

	var totalMarketValue float64
	for _, asset := range assets {
		totalMarketValue += asset.MarketValue()
	}

	return s.Analyze(assets, totalMarketValue, settings.DriftThresholdPct, settings.RebalanceEnabled), nil
}
