package model

import "time"

// Asset represents one tracked instrument. The ticker is the stable key and
// never changes after creation. Units and lots are derived from replaying
// buys and sells; invested is cumulative buy capital and is not reduced by
// sells.
type Asset struct {
	Ticker                string     `json:"ticker"`
	Name                  string     `json:"name"`
	TargetWeight          float64    `json:"targetWeight"`
	Price                 float64    `json:"price"`
	Units                 float64    `json:"units"`
	Invested              float64    `json:"invested"`
	Lots                  []Lot      `json:"lots"`
	FirstContributionDate *time.Time `json:"firstContributionDate"`
}

// Lot is a discrete batch of units acquired at one price on one date,
// tracked for FIFO cost-basis purposes. Lots on an asset are ordered oldest
// first; the sum of lot quantities equals the asset's units within floating
// tolerance.
type Lot struct {
	Quantity        float64   `json:"quantity"`
	UnitPrice       float64   `json:"unitPrice"`
	AcquisitionDate time.Time `json:"acquisitionDate"`
}

// MarketValue returns the asset's current market value at its latest
// manually entered price.
func (a Asset) MarketValue() float64 {
	return a.Units * a.Price
}
