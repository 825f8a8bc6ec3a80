package request

type TradeRequest struct {
	Amount float64 `json:"amount"`
}
