package service

import (
	"github.com/mvanholst/portfolio-tracker-backend/internal/config"
	"github.com/mvanholst/portfolio-tracker-backend/internal/model"
	"github.com/mvanholst/portfolio-tracker-backend/internal/repository"
)

// SettingsService reads and writes the planner and rebalance settings,
// falling back to environment-seeded defaults for keys the user has not
// changed yet.
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
	defaults     model.Settings
}

// NewSettingsService creates a new SettingsService with defaults taken from
// the application configuration.
func NewSettingsService(settingsRepo *repository.SettingsRepository, cfg *config.Config) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		defaults: model.Settings{
			FeeFlat:           cfg.Planner.FeeFlat,
			BufferPct:         cfg.Planner.BufferPct,
			DriftThresholdPct: cfg.Rebalance.ThresholdPct,
			RebalanceEnabled:  cfg.Rebalance.Enabled,
		},
	}
}

// GetSettings returns the current settings.
func (s *SettingsService) GetSettings() (model.Settings, error) {
	return s.settingsRepo.GetSettings(s.defaults)
}

// UpdateSettings persists the given settings.
func (s *SettingsService) UpdateSettings(settings model.Settings) error {
	return s.settingsRepo.SaveSettings(settings)
}
