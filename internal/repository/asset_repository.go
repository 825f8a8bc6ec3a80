package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mvanholst/portfolio-tracker-backend/internal/apperrors"
	"github.com/mvanholst/portfolio-tracker-backend/internal/model"
)

// AssetRepository provides data access methods for the asset and lot tables.
// Lots are stored with an explicit position column so FIFO order survives
// round-trips through the database.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// GetAssets retrieves all assets with their open lots, lots ordered oldest
// first. Assets are ordered by ticker for stable listings.
func (r *AssetRepository) GetAssets() ([]model.Asset, error) {
	rows, err := r.db.Query(`
		SELECT ticker, name, target_weight, price, units, invested, first_contribution_date
		FROM asset
		ORDER BY ticker ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	var assets []model.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	lotsByTicker, err := r.getLots()
	if err != nil {
		return nil, err
	}
	for i := range assets {
		assets[i].Lots = lotsByTicker[assets[i].Ticker]
	}

	return assets, nil
}

// GetAsset retrieves a single asset with its open lots.
// Returns apperrors.ErrAssetNotFound if the ticker is unknown.
func (r *AssetRepository) GetAsset(ticker string) (model.Asset, error) {
	row := r.db.QueryRow(`
		SELECT ticker, name, target_weight, price, units, invested, first_contribution_date
		FROM asset
		WHERE ticker = ?
	`, ticker)

	asset, err := scanAsset(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Asset{}, apperrors.ErrAssetNotFound
		}
		return model.Asset{}, err
	}

	lots, err := r.getLotsForTicker(ticker)
	if err != nil {
		return model.Asset{}, err
	}
	asset.Lots = lots

	return asset, nil
}

// InsertAsset creates a new asset row. Lots, units and invested start empty;
// they only change through recorded trades or snapshot import.
// Returns apperrors.ErrDuplicateTicker if the ticker already exists.
func (r *AssetRepository) InsertAsset(asset model.Asset) error {
	var exists bool
	if err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM asset WHERE ticker = ?)`, asset.Ticker).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check for existing asset: %w", err)
	}
	if exists {
		return apperrors.ErrDuplicateTicker
	}

	_, err := r.db.Exec(`
		INSERT INTO asset (ticker, name, target_weight, price, units, invested, first_contribution_date)
		VALUES (?, ?, ?, ?, 0, 0, NULL)
	`, asset.Ticker, asset.Name, asset.TargetWeight, asset.Price)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}
	return nil
}

// UpdatePrice sets the asset's manually entered unit price.
func (r *AssetRepository) UpdatePrice(ticker string, price float64) error {
	return r.updateColumn(ticker, "price", price)
}

// UpdateTargetWeight sets the asset's target portfolio weight.
func (r *AssetRepository) UpdateTargetWeight(ticker string, weight float64) error {
	return r.updateColumn(ticker, "target_weight", weight)
}

func (r *AssetRepository) updateColumn(ticker, column string, value float64) error {
	// column is one of two compile-time constants, never user input.
	result, err := r.db.Exec(`UPDATE asset SET `+column+` = ? WHERE ticker = ?`, value, ticker)
	if err != nil {
		return fmt.Errorf("failed to update asset %s: %w", column, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

// SaveHoldingsTx persists the trade-derived state of an asset (units,
// invested, first contribution date and the full lot list) inside the given
// transaction. Price, name and target weight are not touched here.
func (r *AssetRepository) SaveHoldingsTx(tx *sql.Tx, asset model.Asset) error {
	var firstContribution any
	if asset.FirstContributionDate != nil {
		firstContribution = FormatTime(*asset.FirstContributionDate)
	}

	_, err := tx.Exec(`
		UPDATE asset
		SET units = ?, invested = ?, first_contribution_date = ?
		WHERE ticker = ?
	`, asset.Units, asset.Invested, firstContribution, asset.Ticker)
	if err != nil {
		return fmt.Errorf("failed to update asset holdings: %w", err)
	}

	return r.replaceLotsTx(tx, asset.Ticker, asset.Lots)
}

// ReplaceAllTx replaces every asset and lot with the given collection, used
// by snapshot import inside one transaction.
func (r *AssetRepository) ReplaceAllTx(tx *sql.Tx, assets []model.Asset) error {
	if err := r.DeleteAllTx(tx); err != nil {
		return err
	}

	for _, asset := range assets {
		var firstContribution any
		if asset.FirstContributionDate != nil {
			firstContribution = FormatTime(*asset.FirstContributionDate)
		}
		_, err := tx.Exec(`
			INSERT INTO asset (ticker, name, target_weight, price, units, invested, first_contribution_date)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, asset.Ticker, asset.Name, asset.TargetWeight, asset.Price, asset.Units, asset.Invested, firstContribution)
		if err != nil {
			return fmt.Errorf("failed to insert asset %s: %w", asset.Ticker, err)
		}
		if err := r.replaceLotsTx(tx, asset.Ticker, asset.Lots); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAllTx removes every asset; lots cascade.
func (r *AssetRepository) DeleteAllTx(tx *sql.Tx) error {
	if _, err := tx.Exec(`DELETE FROM asset`); err != nil {
		return fmt.Errorf("failed to delete assets: %w", err)
	}
	return nil
}

func (r *AssetRepository) replaceLotsTx(tx *sql.Tx, ticker string, lots []model.Lot) error {
	if _, err := tx.Exec(`DELETE FROM lot WHERE ticker = ?`, ticker); err != nil {
		return fmt.Errorf("failed to delete lots: %w", err)
	}
	for i, lot := range lots {
		_, err := tx.Exec(`
			INSERT INTO lot (id, ticker, position, quantity, unit_price, acquisition_date)
			VALUES (?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), ticker, i, lot.Quantity, lot.UnitPrice, FormatTime(lot.AcquisitionDate))
		if err != nil {
			return fmt.Errorf("failed to insert lot: %w", err)
		}
	}
	return nil
}

func (r *AssetRepository) getLots() (map[string][]model.Lot, error) {
	rows, err := r.db.Query(`
		SELECT ticker, quantity, unit_price, acquisition_date
		FROM lot
		ORDER BY ticker ASC, position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query lot table: %w", err)
	}
	defer rows.Close()

	lotsByTicker := make(map[string][]model.Lot)
	for rows.Next() {
		var ticker, dateStr string
		var lot model.Lot
		if err := rows.Scan(&ticker, &lot.Quantity, &lot.UnitPrice, &dateStr); err != nil {
			return nil, fmt.Errorf("failed to scan lot table results: %w", err)
		}
		lot.AcquisitionDate, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		lotsByTicker[ticker] = append(lotsByTicker[ticker], lot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lot table: %w", err)
	}
	return lotsByTicker, nil
}

func (r *AssetRepository) getLotsForTicker(ticker string) ([]model.Lot, error) {
	rows, err := r.db.Query(`
		SELECT quantity, unit_price, acquisition_date
		FROM lot
		WHERE ticker = ?
		ORDER BY position ASC
	`, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to query lot table: %w", err)
	}
	defer rows.Close()

	var lots []model.Lot
	for rows.Next() {
		var dateStr string
		var lot model.Lot
		if err := rows.Scan(&lot.Quantity, &lot.UnitPrice, &dateStr); err != nil {
			return nil, fmt.Errorf("failed to scan lot table results: %w", err)
		}
		lot.AcquisitionDate, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lot table: %w", err)
	}
	return lots, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (model.Asset, error) {
	var asset model.Asset
	var firstContribution sql.NullString

	err := row.Scan(
		&asset.Ticker,
		&asset.Name,
		&asset.TargetWeight,
		&asset.Price,
		&asset.Units,
		&asset.Invested,
		&firstContribution,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Asset{}, err
		}
		return model.Asset{}, fmt.Errorf("failed to scan asset table results: %w", err)
	}

	if firstContribution.Valid {
		var parsed time.Time
		parsed, err = ParseTime(firstContribution.String)
		if err != nil {
			return model.Asset{}, err
		}
		asset.FirstContributionDate = &parsed
	}

	return asset, nil
}
