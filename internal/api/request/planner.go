package request

type PlanRequest struct {
	Budget    *float64 `json:"budget,omitempty"`
	FeeFlat   *float64 `json:"feeFlat,omitempty"`
	BufferPct *float64 `json:"bufferPct,omitempty"`
}
