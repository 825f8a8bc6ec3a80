package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/mvanholst/portfolio-tracker-backend/internal/apperrors"
	"github.com/mvanholst/portfolio-tracker-backend/internal/testutil"
)

// TestAssetService_CreateAsset tests asset creation and duplicate handling.
func TestAssetService_CreateAsset(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAssetService(t, db)

	t.Run("creates an asset with no holdings", func(t *testing.T) {
		created, err := svc.CreateAsset("VAS", "Australian Shares", 0.6, 98.5)
		if err != nil {
			t.Fatalf("CreateAsset returned unexpected error: %v", err)
		}
		if created.Units != 0 || created.Invested != 0 {
			t.Errorf("New asset must start without holdings, got %+v", created)
		}

		loaded, err := svc.GetAsset("VAS")
		if err != nil {
			t.Fatalf("GetAsset returned unexpected error: %v", err)
		}
		if loaded.Name != "Australian Shares" || loaded.Price != 98.5 || loaded.TargetWeight != 0.6 {
			t.Errorf("Asset not persisted as created: %+v", loaded)
		}
	})

	t.Run("duplicate ticker is rejected", func(t *testing.T) {
		_, err := svc.CreateAsset("VAS", "Duplicate", 0, 0)
		if !errors.Is(err, apperrors.ErrDuplicateTicker) {
			t.Errorf("Expected ErrDuplicateTicker, got %v", err)
		}
	})

	t.Run("unknown ticker returns not found", func(t *testing.T) {
		_, err := svc.GetAsset("MISSING")
		if !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound, got %v", err)
		}
	})
}

// TestAssetService_SetPrice tests manual price updates.
func TestAssetService_SetPrice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAssetService(t, db)

	testutil.CreateAsset(t, db, "VAS", 100, 0.5)

	if err := svc.SetPrice("VAS", 105.25); err != nil {
		t.Fatalf("SetPrice returned unexpected error: %v", err)
	}
	asset, err := svc.GetAsset("VAS")
	if err != nil {
		t.Fatalf("GetAsset returned unexpected error: %v", err)
	}
	if asset.Price != 105.25 {
		t.Errorf("Expected price 105.25, got %v", asset.Price)
	}

	if err := svc.SetPrice("MISSING", 1); !errors.Is(err, apperrors.ErrAssetNotFound) {
		t.Errorf("Expected ErrAssetNotFound for unknown ticker, got %v", err)
	}
}

// TestAssetService_Summary tests the derived valuation view.
//
// WHY: Current weights are derived from market values at read time; they must
// sum to one across a priced portfolio and degrade to zero without value.
func TestAssetService_Summary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAssetService(t, db)

	acquired := time.Now().UTC().AddDate(-1, 0, 0)
	testutil.NewAsset("VAS").
		WithPrice(100).
		WithTargetWeight(0.5).
		WithInvested(600).
		WithFirstContribution(acquired).
		WithLot(7, 100, acquired).
		Build(t, db)
	testutil.NewAsset("VGS").
		WithPrice(100).
		WithTargetWeight(0.5).
		WithInvested(300).
		WithFirstContribution(acquired).
		WithLot(3, 100, acquired).
		Build(t, db)

	summary, err := svc.Summary()
	if err != nil {
		t.Fatalf("Summary returned unexpected error: %v", err)
	}

	if summary.TotalValue != 1000 || summary.TotalInvested != 900 {
		t.Errorf("Expected totals 1000 / 900, got %v / %v", summary.TotalValue, summary.TotalInvested)
	}
	if len(summary.Positions) != 2 {
		t.Fatalf("Expected 2 positions, got %d", len(summary.Positions))
	}

	byTicker := make(map[string]float64, len(summary.Positions))
	for _, pos := range summary.Positions {
		byTicker[pos.Ticker] = pos.CurrentWeight
	}
	if byTicker["VAS"] != 0.7 || byTicker["VGS"] != 0.3 {
		t.Errorf("Expected current weights 0.7 / 0.3, got %v / %v", byTicker["VAS"], byTicker["VGS"])
	}
	if total := byTicker["VAS"] + byTicker["VGS"]; total != 1 {
		t.Errorf("Current weights should sum to 1, got %v", total)
	}
}
