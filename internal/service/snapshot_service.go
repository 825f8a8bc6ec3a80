package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mvanholst/portfolio-tracker-backend/internal/apperrors"
	"github.com/mvanholst/portfolio-tracker-backend/internal/model"
	"github.com/mvanholst/portfolio-tracker-backend/internal/repository"
)

// SnapshotService materializes the full portfolio state (assets plus
// transaction log) as an exportable snapshot and restores it from imports.
// The two collections are always handled as a pair.
type SnapshotService struct {
	db              *sql.DB
	assetRepo       *repository.AssetRepository
	transactionRepo *repository.TransactionRepository
}

// NewSnapshotService creates a new SnapshotService with the provided dependencies.
func NewSnapshotService(
	db *sql.DB,
	assetRepo *repository.AssetRepository,
	transactionRepo *repository.TransactionRepository,
) *SnapshotService {
	return &SnapshotService{
		db:              db,
		assetRepo:       assetRepo,
		transactionRepo: transactionRepo,
	}
}

// Export assembles the current snapshot, loading assets and the transaction
// log concurrently.
func (s *SnapshotService) Export(ctx context.Context) (model.Snapshot, error) {
	var snapshot model.Snapshot

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		assets, err := s.assetRepo.GetAssets()
		if err != nil {
			return err
		}
		snapshot.Assets = assets
		return nil
	})
	g.Go(func() error {
		transactions, err := s.transactionRepo.GetTransactions()
		if err != nil {
			return err
		}
		snapshot.Transactions = transactions
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.Snapshot{}, err
	}

	if snapshot.Assets == nil {
		snapshot.Assets = []model.Asset{}
	}
	if snapshot.Transactions == nil {
		snapshot.Transactions = []model.Transaction{}
	}
	return snapshot, nil
}

// ExportCSV renders the snapshot as a two-section CSV: #POSITIONS and
// #TRANSACTIONS. Units are formatted to 6 decimal places, money to 2, prices
// to 4 and weights as percentages with 2.
func (s *SnapshotService) ExportCSV(ctx context.Context) ([]byte, error) {
	snapshot, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}

	var totalValue float64
	for _, asset := range snapshot.Assets {
		totalValue += asset.MarketValue()
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	write := func(record ...string) {
		// csv.Writer defers errors to Flush; checked once below.
		_ = w.Write(record)
	}

	write("#POSITIONS")
	write("Ticker", "Units", "Price", "Invested", "MarketValue", "Weight")
	for _, asset := range snapshot.Assets {
		weight := 0.0
		if totalValue > 0 {
			weight = asset.MarketValue() / totalValue
		}
		write(
			asset.Ticker,
			fmt.Sprintf("%.6f", asset.Units),
			fmt.Sprintf("%.4f", asset.Price),
			fmt.Sprintf("%.2f", asset.Invested),
			fmt.Sprintf("%.2f", asset.MarketValue()),
			fmt.Sprintf("%.2f%%", weight*100),
		)
	}

	write("#TRANSACTIONS")
	write("Kind", "Ticker", "Date", "Units", "Price", "Amount", "Proceeds", "CostBase", "Gain", "DiscountGain")
	for _, txn := range snapshot.Transactions {
		write(
			txn.Kind,
			txn.Ticker,
			txn.Date.UTC().Format(time.RFC3339),
			fmt.Sprintf("%.6f", txn.Units),
			fmt.Sprintf("%.4f", txn.Price),
			fmt.Sprintf("%.2f", txn.Amount),
			fmt.Sprintf("%.2f", txn.Proceeds),
			fmt.Sprintf("%.2f", txn.CostBase),
			fmt.Sprintf("%.2f", txn.Gain),
			fmt.Sprintf("%.2f", txn.DiscountGain),
		)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to render CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// Import validates and restores a JSON snapshot, replacing all existing
// state in one database transaction. A snapshot is valid when "assets"
// decodes as an array; "transactions" defaults to empty when absent or
// malformed. On any validation failure the existing state is untouched.
func (s *SnapshotService) Import(ctx context.Context, data []byte) (model.Snapshot, error) {
	var raw struct {
		Assets       json.RawMessage `json:"assets"`
		Transactions json.RawMessage `json:"transactions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: not a JSON object: %v", apperrors.ErrMalformedSnapshot, err)
	}
	if raw.Assets == nil {
		return model.Snapshot{}, fmt.Errorf("%w: missing \"assets\" array", apperrors.ErrMalformedSnapshot)
	}

	var snapshot model.Snapshot
	if err := json.Unmarshal(raw.Assets, &snapshot.Assets); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: \"assets\" is not an asset array: %v", apperrors.ErrMalformedSnapshot, err)
	}
	if raw.Transactions != nil {
		// Tolerated: a malformed transaction log falls back to empty.
		if err := json.Unmarshal(raw.Transactions, &snapshot.Transactions); err != nil {
			snapshot.Transactions = nil
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := s.assetRepo.ReplaceAllTx(tx, snapshot.Assets); err != nil {
		return model.Snapshot{}, err
	}
	if err := s.transactionRepo.ReplaceAllTx(tx, snapshot.Transactions); err != nil {
		return model.Snapshot{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to commit import: %w", err)
	}

	if snapshot.Transactions == nil {
		snapshot.Transactions = []model.Transaction{}
	}
	return snapshot, nil
}

// Reset clears all assets and transactions.
func (s *SnapshotService) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := s.assetRepo.DeleteAllTx(tx); err != nil {
		return err
	}
	if err := s.transactionRepo.DeleteAllTx(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}
	return nil
}
