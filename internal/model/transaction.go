package model

import "time"

// Transaction kinds.
const (
	KindBuy  = "BUY"
	KindSell = "SELL"
)

// Transaction is an immutable append-only log entry for a buy or sell.
// The sell-only fields carry realized-gain detail: Gain is proceeds minus
// cost base and may be negative, while DiscountGain aggregates the
// post-discount non-negative gain per consumed lot. The two are intentionally
// asymmetric; losses never offset discounted gains.
type Transaction struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Ticker       string    `json:"ticker"`
	Date         time.Time `json:"date"`
	Units        float64   `json:"units"`
	Price        float64   `json:"price"`
	Amount       float64   `json:"amount"`
	Proceeds     float64   `json:"proceeds,omitempty"`
	CostBase     float64   `json:"costBase,omitempty"`
	Gain         float64   `json:"gain,omitempty"`
	DiscountGain float64   `json:"discountGain,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}
