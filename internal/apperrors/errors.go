package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAssetNotFound indicates that an asset with the given ticker does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientUnits indicates that a sell cannot be completed because
	// the asset does not hold enough units at the current price.
	ErrInsufficientUnits = errors.New("insufficient units for sale")

	// ErrDuplicateTicker indicates that an asset with the same ticker already exists.
	ErrDuplicateTicker = errors.New("ticker already exists")

	// ErrMalformedSnapshot indicates that an imported snapshot does not have
	// the required shape (an "assets" array). Existing state is left untouched.
	ErrMalformedSnapshot = errors.New("malformed snapshot")

	// ErrInvalidTicker indicates that a ticker parameter is missing or not in
	// the accepted format.
	ErrInvalidTicker = errors.New("invalid ticker")

	// ErrInvalidFinancialYear indicates that a financial-year parameter is not
	// a plausible starting year.
	ErrInvalidFinancialYear = errors.New("invalid financial year")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data.
var (
	ErrFailedToRetrieveAssets       = errors.New("failed to retrieve assets")
	ErrFailedToRetrieveAsset        = errors.New("failed to retrieve asset")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToRetrieveSettings     = errors.New("failed to retrieve settings")
	ErrFailedToExportSnapshot       = errors.New("failed to export snapshot")
	ErrFailedToGetTaxSummary        = errors.New("failed to get tax summary")
)
