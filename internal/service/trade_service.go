package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mvanholst/portfolio-tracker-backend/internal/ledger"
	"github.com/mvanholst/portfolio-tracker-backend/internal/model"
	"github.com/mvanholst/portfolio-tracker-backend/internal/repository"
)

// TradeService records buys and sells against an asset. It loads the asset,
// applies the pure ledger operation and persists the outcome (asset
// holdings, lots and transaction entry) in one database transaction.
//
// Per policy, invalid input and unfillable sells are not errors: the
// operation reports applied=false and leaves state untouched. Callers decide
// whether to surface a message to the user.
type TradeService struct {
	db              *sql.DB
	assetRepo       *repository.AssetRepository
	transactionRepo *repository.TransactionRepository
}

// NewTradeService creates a new TradeService with the provided dependencies.
func NewTradeService(
	db *sql.DB,
	assetRepo *repository.AssetRepository,
	transactionRepo *repository.TransactionRepository,
) *TradeService {
	return &TradeService{
		db:              db,
		assetRepo:       assetRepo,
		transactionRepo: transactionRepo,
	}
}

// Buy records a buy of amount AUD at the asset's current price.
func (s *TradeService) Buy(ctx context.Context, ticker string, amount float64) (model.Transaction, bool, error) {
	return s.record(ctx, ticker, amount, ledger.ApplyBuy)
}

// Sell records a sale of amount AUD at the asset's current price, consuming
// lots FIFO. Sales are all-or-nothing; an unfillable sale applies nothing.
func (s *TradeService) Sell(ctx context.Context, ticker string, amount float64) (model.Transaction, bool, error) {
	return s.record(ctx, ticker, amount, ledger.ApplySell)
}

type applyFunc func(model.Asset, float64, time.Time) (model.Asset, model.Transaction, bool)

func (s *TradeService) record(ctx context.Context, ticker string, amount float64, apply applyFunc) (model.Transaction, bool, error) {
	asset, err := s.assetRepo.GetAsset(ticker)
	if err != nil {
		return model.Transaction{}, false, err
	}

	updated, txn, applied := apply(asset, amount, time.Now().UTC())
	if !applied {
		return model.Transaction{}, false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Transaction{}, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := s.assetRepo.SaveHoldingsTx(tx, updated); err != nil {
		return model.Transaction{}, false, err
	}
	if err := s.transactionRepo.InsertTx(tx, txn); err != nil {
		return model.Transaction{}, false, err
	}
	if err := tx.Commit(); err != nil {
		return model.Transaction{}, false, fmt.Errorf("failed to commit trade: %w", err)
	}

	return txn, true, nil
}
