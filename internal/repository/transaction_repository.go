package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mvanholst/portfolio-tracker-backend/internal/apperrors"
	"github.com/mvanholst/portfolio-tracker-backend/internal/model"
)

// TransactionRepository provides data access methods for the trade table,
// the append-only transaction log. Logical order is chronological;
// most-recent-first is a presentation concern handled by callers.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, kind, ticker, date, units, price, amount, proceeds, cost_base, gain, discount_gain, created_at`

// GetTransactions retrieves the full transaction log in chronological order.
func (r *TransactionRepository) GetTransactions() ([]model.Transaction, error) {
	return r.queryTransactions(`
		SELECT `+transactionColumns+`
		FROM trade
		ORDER BY date ASC, created_at ASC
	`)
}

// GetTransaction retrieves a single transaction by its ID.
// Returns apperrors.ErrTransactionNotFound if no row matches.
func (r *TransactionRepository) GetTransaction(id string) (model.Transaction, error) {
	row := r.db.QueryRow(`
		SELECT `+transactionColumns+`
		FROM trade
		WHERE id = ?
	`, id)

	txn, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Transaction{}, apperrors.ErrTransactionNotFound
		}
		return model.Transaction{}, err
	}
	return txn, nil
}

// GetSellsBetween retrieves SELL transactions with a date inside the
// inclusive [start, end] window, in chronological order.
func (r *TransactionRepository) GetSellsBetween(start, end time.Time) ([]model.Transaction, error) {
	return r.queryTransactions(`
		SELECT `+transactionColumns+`
		FROM trade
		WHERE kind = ? AND date >= ? AND date <= ?
		ORDER BY date ASC
	`, model.KindSell, FormatTime(start), FormatTime(end))
}

// InsertTx appends a transaction to the log inside the given database
// transaction.
func (r *TransactionRepository) InsertTx(tx *sql.Tx, txn model.Transaction) error {
	_, err := tx.Exec(`
		INSERT INTO trade (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, txn.ID, txn.Kind, txn.Ticker, FormatTime(txn.Date), txn.Units, txn.Price, txn.Amount,
		txn.Proceeds, txn.CostBase, txn.Gain, txn.DiscountGain, FormatTime(txn.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// ReplaceAllTx replaces the transaction log with the given entries, used by
// snapshot import inside one transaction.
func (r *TransactionRepository) ReplaceAllTx(tx *sql.Tx, txns []model.Transaction) error {
	if err := r.DeleteAllTx(tx); err != nil {
		return err
	}
	for _, txn := range txns {
		if err := r.InsertTx(tx, txn); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAllTx clears the transaction log.
func (r *TransactionRepository) DeleteAllTx(tx *sql.Tx) error {
	if _, err := tx.Exec(`DELETE FROM trade`); err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}
	return nil
}

func (r *TransactionRepository) queryTransactions(query string, args ...any) ([]model.Transaction, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade table: %w", err)
	}
	return txns, nil
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var txn model.Transaction
	var dateStr string
	var createdAtStr sql.NullString

	err := row.Scan(
		&txn.ID,
		&txn.Kind,
		&txn.Ticker,
		&dateStr,
		&txn.Units,
		&txn.Price,
		&txn.Amount,
		&txn.Proceeds,
		&txn.CostBase,
		&txn.Gain,
		&txn.DiscountGain,
		&createdAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Transaction{}, err
		}
		return model.Transaction{}, fmt.Errorf("failed to scan trade table results: %w", err)
	}

	txn.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.Transaction{}, err
	}
	if createdAtStr.Valid {
		createdAt, err := ParseTime(createdAtStr.String)
		if err == nil {
			txn.CreatedAt = createdAt
		}
	}

	return txn, nil
}
