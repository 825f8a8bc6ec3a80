package repository

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/mvanholst/portfolio-tracker-backend/internal/model"
)

// Setting keys for the setting table.
const (
	settingBudget            = "budget"
	settingFeeFlat           = "fee_flat"
	settingBufferPct         = "buffer_pct"
	settingDriftThresholdPct = "drift_threshold_pct"
	settingRebalanceEnabled  = "rebalance_enabled"
)

// SettingsRepository provides data access methods for the setting table, a
// simple key/value store for planner and rebalance configuration.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository with the provided database connection.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSettings reads the persisted settings. Missing keys keep the values of
// the provided defaults, so env-seeded configuration applies until the user
// changes a setting.
func (r *SettingsRepository) GetSettings(defaults model.Settings) (model.Settings, error) {
	rows, err := r.db.Query(`SELECT key, value FROM setting`)
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to query setting table: %w", err)
	}
	defer rows.Close()

	settings := defaults
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return model.Settings{}, fmt.Errorf("failed to scan setting table results: %w", err)
		}
		switch key {
		case settingBudget:
			settings.Budget = parseFloatOr(value, defaults.Budget)
		case settingFeeFlat:
			settings.FeeFlat = parseFloatOr(value, defaults.FeeFlat)
		case settingBufferPct:
			settings.BufferPct = parseFloatOr(value, defaults.BufferPct)
		case settingDriftThresholdPct:
			settings.DriftThresholdPct = parseFloatOr(value, defaults.DriftThresholdPct)
		case settingRebalanceEnabled:
			settings.RebalanceEnabled = value == "true"
		}
	}
	if err = rows.Err(); err != nil {
		return model.Settings{}, fmt.Errorf("error iterating setting table: %w", err)
	}
	return settings, nil
}

// SaveSettings upserts every setting key.
func (r *SettingsRepository) SaveSettings(settings model.Settings) error {
	pairs := map[string]string{
		settingBudget:            formatFloat(settings.Budget),
		settingFeeFlat:           formatFloat(settings.FeeFlat),
		settingBufferPct:         formatFloat(settings.BufferPct),
		settingDriftThresholdPct: formatFloat(settings.DriftThresholdPct),
		settingRebalanceEnabled:  strconv.FormatBool(settings.RebalanceEnabled),
	}
	for key, value := range pairs {
		_, err := r.db.Exec(`
			INSERT INTO setting (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value)
		if err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}
	return nil
}

func parseFloatOr(value string, fallback float64) float64 {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
