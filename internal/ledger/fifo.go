// Package ledger implements the portfolio calculation core: FIFO lot
// consumption and the buy/sell recorder that turns trade intents into asset
// mutations and transaction log entries. Everything in this package operates
// on plain values and has no side effects; persistence is the caller's
// concern.
package ledger

import "github.com/mvanholst/portfolio-tracker-backend/internal/model"

// Epsilon is the floating tolerance used when deciding whether a sell can be
// filled from the open lots.
const Epsilon = 1e-9

// Consume walks the lots oldest to newest and consumes up to quantity units,
// oldest lots first. It returns the consumed lots in consumption order (each
// preserving its original unit price and acquisition date), the residual
// lots in their original order with consumed lots removed or reduced, and
// the unfilled remainder (zero when the lots cover the full quantity).
//
// The inputs are not modified. Total consumed quantity plus unfilled always
// equals the requested quantity, and residual quantities are never negative.
func Consume(lots []model.Lot, quantity float64) (consumed, residual []model.Lot, unfilled float64) {
	remaining := quantity

	for _, lot := range lots {
		if remaining <= 0 {
			residual = append(residual, lot)
			continue
		}

		take := remaining
		if lot.Quantity < take {
			take = lot.Quantity
		}

		consumed = append(consumed, model.Lot{
			Quantity:        take,
			UnitPrice:       lot.UnitPrice,
			AcquisitionDate: lot.AcquisitionDate,
		})
		remaining -= take

		if leftover := lot.Quantity - take; leftover > 0 {
			residual = append(residual, model.Lot{
				Quantity:        leftover,
				UnitPrice:       lot.UnitPrice,
				AcquisitionDate: lot.AcquisitionDate,
			})
		}
	}

	if remaining < 0 {
		remaining = 0
	}
	return consumed, residual, remaining
}
