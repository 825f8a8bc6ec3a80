package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mvanholst/portfolio-tracker-backend/internal/model"
	"github.com/mvanholst/portfolio-tracker-backend/internal/repository"
)

// AssetBuilder provides a fluent interface for creating test assets.
//
// Example usage:
//
//	// Simple creation with defaults
//	asset := testutil.NewAsset("VAS").Build(t, db)
//
//	// Customized asset with holdings
//	asset := testutil.NewAsset("VGS").
//	    WithPrice(105.5).
//	    WithTargetWeight(0.4).
//	    WithLot(10, 95, someDate).
//	    Build(t, db)
type AssetBuilder struct {
	asset model.Asset
}

// NewAsset creates an AssetBuilder with sensible defaults.
func NewAsset(ticker string) *AssetBuilder {
	return &AssetBuilder{
		asset: model.Asset{
			Ticker: ticker,
			Name:   "Test Asset " + ticker,
		},
	}
}

// WithName sets a custom name.
func (b *AssetBuilder) WithName(name string) *AssetBuilder {
	b.asset.Name = name
	return b
}

// WithPrice sets the current unit price.
func (b *AssetBuilder) WithPrice(price float64) *AssetBuilder {
	b.asset.Price = price
	return b
}

// WithTargetWeight sets the target portfolio weight.
func (b *AssetBuilder) WithTargetWeight(weight float64) *AssetBuilder {
	b.asset.TargetWeight = weight
	return b
}

// WithInvested sets the cumulative invested capital.
func (b *AssetBuilder) WithInvested(invested float64) *AssetBuilder {
	b.asset.Invested = invested
	return b
}

// WithFirstContribution sets the first contribution date.
func (b *AssetBuilder) WithFirstContribution(date time.Time) *AssetBuilder {
	b.asset.FirstContributionDate = &date
	return b
}

// WithLot appends an open lot and adds its quantity to the asset's units.
func (b *AssetBuilder) WithLot(quantity, unitPrice float64, acquired time.Time) *AssetBuilder {
	b.asset.Lots = append(b.asset.Lots, model.Lot{
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		AcquisitionDate: acquired,
	})
	b.asset.Units += quantity
	return b
}

// Build creates the asset (and its lots) in the database and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	var firstContribution any
	if b.asset.FirstContributionDate != nil {
		firstContribution = repository.FormatTime(*b.asset.FirstContributionDate)
	}

	_, err := db.Exec(`
		INSERT INTO asset (ticker, name, target_weight, price, units, invested, first_contribution_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, b.asset.Ticker, b.asset.Name, b.asset.TargetWeight, b.asset.Price, b.asset.Units, b.asset.Invested, firstContribution)
	if err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}

	for i, lot := range b.asset.Lots {
		_, err := db.Exec(`
			INSERT INTO lot (id, ticker, position, quantity, unit_price, acquisition_date)
			VALUES (?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), b.asset.Ticker, i, lot.Quantity, lot.UnitPrice, repository.FormatTime(lot.AcquisitionDate))
		if err != nil {
			t.Fatalf("Failed to create test lot: %v", err)
		}
	}

	return b.asset
}

// TransactionBuilder provides a fluent interface for creating test
// transaction log entries.
type TransactionBuilder struct {
	txn model.Transaction
}

// NewBuyTransaction creates a BUY entry builder.
func NewBuyTransaction(ticker string, date time.Time) *TransactionBuilder {
	return &TransactionBuilder{
		txn: model.Transaction{
			ID:        uuid.New().String(),
			Kind:      model.KindBuy,
			Ticker:    ticker,
			Date:      date,
			CreatedAt: date,
		},
	}
}

// NewSellTransaction creates a SELL entry builder.
func NewSellTransaction(ticker string, date time.Time) *TransactionBuilder {
	return &TransactionBuilder{
		txn: model.Transaction{
			ID:        uuid.New().String(),
			Kind:      model.KindSell,
			Ticker:    ticker,
			Date:      date,
			CreatedAt: date,
		},
	}
}

// WithUnits sets units, price and amount.
func (b *TransactionBuilder) WithUnits(units, price float64) *TransactionBuilder {
	b.txn.Units = units
	b.txn.Price = price
	b.txn.Amount = units * price
	return b
}

// WithGains sets the sell-only realized gain fields.
func (b *TransactionBuilder) WithGains(proceeds, costBase, gain, discountGain float64) *TransactionBuilder {
	b.txn.Proceeds = proceeds
	b.txn.CostBase = costBase
	b.txn.Gain = gain
	b.txn.DiscountGain = discountGain
	return b
}

// Build inserts the transaction and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO trade (id, kind, ticker, date, units, price, amount, proceeds, cost_base, gain, discount_gain, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.txn.ID, b.txn.Kind, b.txn.Ticker, repository.FormatTime(b.txn.Date), b.txn.Units, b.txn.Price, b.txn.Amount,
		b.txn.Proceeds, b.txn.CostBase, b.txn.Gain, b.txn.DiscountGain, repository.FormatTime(b.txn.CreatedAt))
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return b.txn
}

// Convenience functions

// CreateAsset creates an asset with the given price and target weight.
func CreateAsset(t *testing.T, db *sql.DB, ticker string, price, targetWeight float64) model.Asset {
	t.Helper()
	return NewAsset(ticker).WithPrice(price).WithTargetWeight(targetWeight).Build(t, db)
}
