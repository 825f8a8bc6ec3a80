package request

type UpdateSettingsRequest struct {
	Budget            float64 `json:"budget"`
	FeeFlat           float64 `json:"feeFlat"`
	BufferPct         float64 `json:"bufferPct"`
	DriftThresholdPct float64 `json:"driftThresholdPct"`
	RebalanceEnabled  bool    `json:"rebalanceEnabled"`
}
