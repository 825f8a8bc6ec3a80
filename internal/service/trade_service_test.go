package service_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/mvanholst/portfolio-tracker-backend/internal/apperrors"
	"github.com/mvanholst/portfolio-tracker-backend/internal/model"
	"github.com/mvanholst/portfolio-tracker-backend/internal/repository"
	"github.com/mvanholst/portfolio-tracker-backend/internal/testutil"
)

// TestTradeService_Buy tests buy recording end to end through SQLite.
//
// WHY: A buy must atomically update holdings, append a FIFO lot and write a
// transaction entry; if any of those were to drift apart the ledger would be
// inconsistent. Rejected buys must leave no trace at all.
func TestTradeService_Buy(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTradeService(t, db)
	ctx := context.Background()

	t.Run("successful buy persists holdings and transaction", func(t *testing.T) {
		testutil.CreateAsset(t, db, "VAS", 100, 0.5)

		txn, applied, err := svc.Buy(ctx, "VAS", 500)
		if err != nil {
			t.Fatalf("Buy returned unexpected error: %v", err)
		}
		if !applied {
			t.Fatal("Expected buy to be applied")
		}
		if txn.Kind != model.KindBuy || txn.Amount != 500 || txn.Units != 5 {
			t.Errorf("Unexpected transaction: %+v", txn)
		}

		asset, err := repository.NewAssetRepository(db).GetAsset("VAS")
		if err != nil {
			t.Fatalf("Failed to reload asset: %v", err)
		}
		if asset.Units != 5 || asset.Invested != 500 {
			t.Errorf("Expected 5 units / 500 invested, got %v / %v", asset.Units, asset.Invested)
		}
		if len(asset.Lots) != 1 || asset.Lots[0].Quantity != 5 || asset.Lots[0].UnitPrice != 100 {
			t.Errorf("Expected one lot of 5 units at 100, got %+v", asset.Lots)
		}
		if asset.FirstContributionDate == nil {
			t.Error("First contribution date should be set after the first buy")
		}

		transactions, err := repository.NewTransactionRepository(db).GetTransactions()
		if err != nil {
			t.Fatalf("Failed to load transactions: %v", err)
		}
		if len(transactions) != 1 {
			t.Errorf("Expected exactly 1 transaction entry, got %d", len(transactions))
		}
	})

	t.Run("buy on unpriced asset is a silent no-op", func(t *testing.T) {
		testutil.NewAsset("NEW").Build(t, db)

		_, applied, err := svc.Buy(ctx, "NEW", 500)
		if err != nil {
			t.Fatalf("Buy returned unexpected error: %v", err)
		}
		if applied {
			t.Error("Buy without a price must not be applied")
		}

		asset, err := repository.NewAssetRepository(db).GetAsset("NEW")
		if err != nil {
			t.Fatalf("Failed to reload asset: %v", err)
		}
		if asset.Units != 0 || asset.Invested != 0 || len(asset.Lots) != 0 {
			t.Errorf("No-op buy must leave state untouched, got %+v", asset)
		}
	})

	t.Run("buy on unknown ticker returns not found", func(t *testing.T) {
		_, _, err := svc.Buy(ctx, "MISSING", 500)
		if !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound, got %v", err)
		}
	})

	t.Run("non-positive amount is a silent no-op", func(t *testing.T) {
		testutil.CreateAsset(t, db, "VGS", 50, 0.5)

		_, applied, err := svc.Buy(ctx, "VGS", 0)
		if err != nil {
			t.Fatalf("Buy returned unexpected error: %v", err)
		}
		if applied {
			t.Error("Zero-amount buy must not be applied")
		}
	})
}

// TestTradeService_Sell tests sell recording with FIFO gains through SQLite.
//
// WHY: A sale consumes lots oldest-first and its realized gain feeds the tax
// summary. Unfillable sales are all-or-nothing and must change nothing.
func TestTradeService_Sell(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTradeService(t, db)
	ctx := context.Background()

	t.Run("sell consumes oldest lot and records gains", func(t *testing.T) {
		acquired := time.Now().UTC().AddDate(-2, 0, 0)
		testutil.NewAsset("VAS").
			WithPrice(200).
			WithInvested(1000).
			WithFirstContribution(acquired).
			WithLot(10, 100, acquired).
			Build(t, db)

		// Sell 5 units worth of value: proceeds 1000, cost base 500.
		txn, applied, err := svc.Sell(ctx, "VAS", 1000)
		if err != nil {
			t.Fatalf("Sell returned unexpected error: %v", err)
		}
		if !applied {
			t.Fatal("Expected sell to be applied")
		}
		if txn.Kind != model.KindSell || txn.Units != 5 {
			t.Errorf("Unexpected transaction: %+v", txn)
		}
		if txn.CostBase != 500 || txn.Gain != 500 {
			t.Errorf("Expected cost base 500 and gain 500, got %v / %v", txn.CostBase, txn.Gain)
		}
		// Held two years, so the full gain is discounted by half.
		if txn.DiscountGain != 250 {
			t.Errorf("Expected discount gain 250, got %v", txn.DiscountGain)
		}

		asset, err := repository.NewAssetRepository(db).GetAsset("VAS")
		if err != nil {
			t.Fatalf("Failed to reload asset: %v", err)
		}
		if asset.Units != 5 {
			t.Errorf("Expected 5 units remaining, got %v", asset.Units)
		}
		if len(asset.Lots) != 1 || math.Abs(asset.Lots[0].Quantity-5) > 1e-9 {
			t.Errorf("Expected one residual lot of 5 units, got %+v", asset.Lots)
		}
		if asset.Invested != 1000 {
			t.Errorf("Invested capital must not change on a sale, got %v", asset.Invested)
		}
	})

	t.Run("unfillable sell is a silent no-op", func(t *testing.T) {
		acquired := time.Now().UTC().AddDate(0, -1, 0)
		testutil.NewAsset("VGS").
			WithPrice(100).
			WithInvested(100).
			WithLot(1, 100, acquired).
			Build(t, db)

		_, applied, err := svc.Sell(ctx, "VGS", 500)
		if err != nil {
			t.Fatalf("Sell returned unexpected error: %v", err)
		}
		if applied {
			t.Error("Oversized sell must not be applied")
		}

		asset, err := repository.NewAssetRepository(db).GetAsset("VGS")
		if err != nil {
			t.Fatalf("Failed to reload asset: %v", err)
		}
		if asset.Units != 1 || len(asset.Lots) != 1 {
			t.Errorf("No-op sell must leave holdings untouched, got %+v", asset)
		}
	})
}
