package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/mvanholst/portfolio-tracker-backend/internal/model"
)

// daysPerYear is the divisor for both the holding-period rule and CAGR so
// the two date computations agree.
const daysPerYear = 365.25

// discountHoldingYears is the minimum holding period, in years, for a lot's
// gain to qualify for the 50% capital-gains discount.
const discountHoldingYears = 1.0

// ApplyBuy records a buy of amount AUD against the asset at its current
// price: it appends a new lot, increases units and invested, sets the first
// contribution date if unset, and produces a BUY transaction.
//
// Invalid input (non-positive amount or price) is a silent no-op: the asset
// is returned unchanged with applied=false and no transaction. This is
// deliberate policy so bad caller input can never corrupt state.
func ApplyBuy(asset model.Asset, amount float64, now time.Time) (model.Asset, model.Transaction, bool) {
	if asset.Price <= 0 || amount <= 0 {
		return asset, model.Transaction{}, false
	}

	units := amount / asset.Price

	asset.Lots = append(cloneLots(asset.Lots), model.Lot{
		Quantity:        units,
		UnitPrice:       asset.Price,
		AcquisitionDate: now,
	})
	asset.Units += units
	asset.Invested += amount
	if asset.FirstContributionDate == nil {
		first := now
		asset.FirstContributionDate = &first
	}

	txn := model.Transaction{
		ID:        uuid.New().String(),
		Kind:      model.KindBuy,
		Ticker:    asset.Ticker,
		Date:      now,
		Units:     units,
		Price:     asset.Price,
		Amount:    amount,
		CreatedAt: now,
	}
	return asset, txn, true
}

// ApplySell records a sale of amount AUD against the asset at its current
// price, consuming open lots FIFO. The transaction's Gain is proceeds minus
// cost base and may be negative; DiscountGain floors each consumed lot's
// gain at zero and halves it when the lot was held at least one year.
// Invested is unchanged by sells; CAGR uses cumulative invested, not net.
//
// The sale is all-or-nothing: if the open lots cannot cover the requested
// quantity within Epsilon, or the input is invalid, the asset is returned
// unchanged with applied=false.
func ApplySell(asset model.Asset, amount float64, now time.Time) (model.Asset, model.Transaction, bool) {
	if asset.Price <= 0 || amount <= 0 {
		return asset, model.Transaction{}, false
	}

	units := amount / asset.Price
	consumed, residual, unfilled := Consume(asset.Lots, units)
	if unfilled > Epsilon {
		return asset, model.Transaction{}, false
	}

	var costBase, discountGain float64
	for _, lot := range consumed {
		costBase += lot.Quantity * lot.UnitPrice

		lotGain := lot.Quantity * (asset.Price - lot.UnitPrice)
		if lotGain < 0 {
			lotGain = 0
		}
		heldYears := now.Sub(lot.AcquisitionDate).Hours() / (24 * daysPerYear)
		if heldYears >= discountHoldingYears {
			discountGain += lotGain / 2
		} else {
			discountGain += lotGain
		}
	}

	asset.Lots = residual
	asset.Units -= units
	if asset.Units < 0 {
		asset.Units = 0
	}

	txn := model.Transaction{
		ID:           uuid.New().String(),
		Kind:         model.KindSell,
		Ticker:       asset.Ticker,
		Date:         now,
		Units:        units,
		Price:        asset.Price,
		Amount:       amount,
		Proceeds:     amount,
		CostBase:     costBase,
		Gain:         amount - costBase,
		DiscountGain: discountGain,
		CreatedAt:    now,
	}
	return asset, txn, true
}

// cloneLots copies the slice so appends never alias the caller's backing
// array.
func cloneLots(lots []model.Lot) []model.Lot {
	if len(lots) == 0 {
		return nil
	}
	out := make([]model.Lot, len(lots))
	copy(out, lots)
	return out
}
