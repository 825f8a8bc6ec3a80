package validation

import "github.com/mvanholst/portfolio-tracker-backend/internal/api/request"

// ValidateTrade validates a buy or sell request. The calculation core treats
// bad input as a silent no-op regardless; rejecting it here lets the API
// give the user a message instead of a silently empty result.
func ValidateTrade(req request.TradeRequest) error {
	if req.Amount <= 0 {
		return &Error{Fields: map[string]string{"amount": "amount must be positive"}}
	}
	return nil
}
