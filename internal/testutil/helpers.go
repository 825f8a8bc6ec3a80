package testutil

import (
	"database/sql"
	"testing"

	"github.com/mvanholst/portfolio-tracker-backend/internal/config"
	"github.com/mvanholst/portfolio-tracker-backend/internal/repository"
	"github.com/mvanholst/portfolio-tracker-backend/internal/service"
)

// TestConfig returns a configuration with the default planner and rebalance
// settings used across tests.
func TestConfig() *config.Config {
	return &config.Config{
		Rebalance: config.RebalanceConfig{
			ThresholdPct: 5,
			Enabled:      true,
		},
	}
}

func NewTestTradeService(t *testing.T, db *sql.DB) *service.TradeService {
	t.Helper()

	assetRepo := repository.NewAssetRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewTradeService(db, assetRepo, transactionRepo)
}

func NewTestTaxService(t *testing.T, db *sql.DB) *service.TaxService {
	t.Helper()

	return service.NewTaxService(repository.NewTransactionRepository(db))
}

func NewTestSettingsService(t *testing.T, db *sql.DB) *service.SettingsService {
	t.Helper()

	return service.NewSettingsService(repository.NewSettingsRepository(db), TestConfig())
}

func NewTestPlannerService(t *testing.T, db *sql.DB) *service.PlannerService {
	t.Helper()

	assetRepo := repository.NewAssetRepository(db)

	return service.NewPlannerService(
		assetRepo,
		NewTestSettingsService(t, db),
		NewTestTradeService(t, db),
	)
}

func NewTestRebalanceService(t *testing.T, db *sql.DB) *service.RebalanceService {
	t.Helper()

	return service.NewRebalanceService(
		repository.NewAssetRepository(db),
		NewTestSettingsService(t, db),
	)
}

func NewTestPerformanceService(t *testing.T, db *sql.DB) *service.PerformanceService {
	t.Helper()

	return service.NewPerformanceService(repository.NewAssetRepository(db))
}

func NewTestAssetService(t *testing.T, db *sql.DB) *service.AssetService {
	t.Helper()

	assetRepo := repository.NewAssetRepository(db)

	return service.NewAssetService(assetRepo, service.NewPerformanceService(assetRepo))
}

func NewTestSnapshotService(t *testing.T, db *sql.DB) *service.SnapshotService {
	t.Helper()

	assetRepo := repository.NewAssetRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewSnapshotService(db, assetRepo, transactionRepo)
}
