package validation

import (
	"errors"
	"strings"

	"github.com/mvanholst/portfolio-tracker-backend/internal/api/request"
)

// ValidateCreateAsset validates an asset creation request.
//
// Required fields:
//   - ticker: 1-10 uppercase letters, digits or dots
//   - name: non-empty, 100 characters or less
//   - targetWeight: fraction in [0, 1]
//   - price: non-negative (zero means "not priced yet")
//
// Returns a validation Error with field-specific messages if validation fails.
func ValidateCreateAsset(req request.CreateAssetRequest) error {
	fields := make(map[string]string)

	if err := ValidateTicker(req.Ticker); err != nil {
		var vErr *Error
		if errors.As(err, &vErr) {
			fields["ticker"] = vErr.Fields["ticker"]
		}
	}

	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	} else if len(req.Name) > 100 {
		fields["name"] = "name must be 100 characters or less"
	}

	if req.TargetWeight < 0 || req.TargetWeight > 1 {
		fields["targetWeight"] = "targetWeight must be between 0 and 1"
	}

	if req.Price < 0 {
		fields["price"] = "price cannot be negative"
	}

	if len(fields) > 0 {
		return &Error{Fields: fields}
	}
	return nil
}

// ValidateSetPrice validates a manual price update.
func ValidateSetPrice(req request.SetPriceRequest) error {
	if req.Price < 0 {
		return &Error{Fields: map[string]string{"price": "price cannot be negative"}}
	}
	return nil
}

// ValidateSetTargetWeight validates a target weight update.
func ValidateSetTargetWeight(req request.SetTargetWeightRequest) error {
	if req.TargetWeight < 0 || req.TargetWeight > 1 {
		return &Error{Fields: map[string]string{"targetWeight": "targetWeight must be between 0 and 1"}}
	}
	return nil
}
