package model

// Settings holds the persisted planner and rebalance configuration. Values
// are seeded from the environment on first use and can be changed at
// runtime.
type Settings struct {
	Budget            float64 `json:"budget"`
	FeeFlat           float64 `json:"feeFlat"`
	BufferPct         float64 `json:"bufferPct"`
	DriftThresholdPct float64 `json:"driftThresholdPct"`
	RebalanceEnabled  bool    `json:"rebalanceEnabled"`
}
