package model

// PlanLine is one asset's share of an allocation plan. EstimatedUnits is nil
// when the asset has no price yet; callers render a "set price" placeholder
// rather than a number.
type PlanLine struct {
	Ticker         string   `json:"ticker"`
	Amount         float64  `json:"amount"`
	EstimatedUnits *float64 `json:"estimatedUnits"`
}

// Plan is a proportional spend plan across target weights.
type Plan struct {
	Budget    float64    `json:"budget"`
	FeesFlat  float64    `json:"feesFlat"`
	BufferPct float64    `json:"bufferPct"`
	Spendable float64    `json:"spendable"`
	Lines     []PlanLine `json:"lines"`
}

// DriftEntry reports one asset whose current portfolio weight has drifted
// from its target weight beyond the configured threshold.
type DriftEntry struct {
	Ticker        string  `json:"ticker"`
	CurrentWeight float64 `json:"currentWeight"`
	TargetWeight  float64 `json:"targetWeight"`
	DriftPct      float64 `json:"driftPct"`
}

// FYSummary aggregates realized gains for one financial year (1 July to
// 30 June). GrossGain sums only positive per-sale gains; losses are not
// netted. DiscountGain is the post-discount figure, not the taxable total.
type FYSummary struct {
	FYStartYear  int     `json:"fyStartYear"`
	EventCount   int     `json:"eventCount"`
	GrossGain    float64 `json:"grossGain"`
	DiscountGain float64 `json:"discountGain"`
}

// Position is an asset enriched with derived valuation figures for
// presentation.
type Position struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	Units         float64 `json:"units"`
	Price         float64 `json:"price"`
	Invested      float64 `json:"invested"`
	MarketValue   float64 `json:"marketValue"`
	CurrentWeight float64 `json:"currentWeight"`
	TargetWeight  float64 `json:"targetWeight"`
	CAGR          float64 `json:"cagr"`
}

// PortfolioSummary is the current state of the whole portfolio.
type PortfolioSummary struct {
	TotalValue    float64    `json:"totalValue"`
	TotalInvested float64    `json:"totalInvested"`
	Positions     []Position `json:"positions"`
}
