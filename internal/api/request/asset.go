package request

type CreateAssetRequest struct {
	Ticker       string  `json:"ticker"`
	Name         string  `json:"name"`
	TargetWeight float64 `json:"targetWeight"`
	Price        float64 `json:"price"`
}

type SetPriceRequest struct {
	Price float64 `json:"price"`
}

type SetTargetWeightRequest struct {
	TargetWeight float64 `json:"targetWeight"`
}
