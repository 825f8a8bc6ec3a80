package validation

import "github.com/mvanholst/portfolio-tracker-backend/internal/api/request"

// ValidateUpdateSettings validates a settings update request.
func ValidateUpdateSettings(req request.UpdateSettingsRequest) error {
	fields := make(map[string]string)

	if req.Budget < 0 {
		fields["budget"] = "budget cannot be negative"
	}
	if req.FeeFlat < 0 {
		fields["feeFlat"] = "feeFlat cannot be negative"
	}
	if req.BufferPct < 0 || req.BufferPct > 100 {
		fields["bufferPct"] = "bufferPct must be between 0 and 100"
	}
	if req.DriftThresholdPct < 0 {
		fields["driftThresholdPct"] = "driftThresholdPct cannot be negative"
	}

	if len(fields) > 0 {
		return &Error{Fields: fields}
	}
	return nil
}

// ValidatePlan validates planner overrides; provided fields must be sane.
func ValidatePlan(req request.PlanRequest) error {
	fields := make(map[string]string)

	if req.Budget != nil && *req.Budget < 0 {
		fields["budget"] = "budget cannot be negative"
	}
	if req.FeeFlat != nil && *req.FeeFlat < 0 {
		fields["feeFlat"] = "feeFlat cannot be negative"
	}
	if req.BufferPct != nil && (*req.BufferPct < 0 || *req.BufferPct > 100) {
		fields["bufferPct"] = "bufferPct must be between 0 and 100"
	}

	if len(fields) > 0 {
		return &Error{Fields: fields}
	}
	return nil
}
