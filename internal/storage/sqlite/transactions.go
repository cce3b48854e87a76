package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/storage"
)

// CreateTransaction atomically persists a transaction, its computed
// splits, and its debt edges. All rows commit or roll back together;
// the read path never observes a transaction without its edges.
// Edges missing an ID or owning transaction ID are stamped in place.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, txn *models.Transaction, splits []models.ComputedSplit, edges []models.DebtEdge) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.CreatedAt == 0 {
		txn.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var category, payerID interface{}
	if txn.Category != "" {
		category = txn.Category
	}
	if txn.PayerID != "" {
		payerID = txn.PayerID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (id, ledger_id, type, currency, amount, category, payer_id, rounding, tail, created_by, private, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.LedgerID, string(txn.Type), txn.Currency, txn.Amount.String(),
		category, payerID, string(txn.Rounding), string(txn.Tail), txn.CreatedBy,
		boolToInt(txn.Private), txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	for i, split := range splits {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO transaction_splits (transaction_id, user_id, method, share, included, amount, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			txn.ID, split.UserID, string(split.Method), split.Share.String(),
			boolToInt(split.Included), split.Amount.String(), i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	for i := range edges {
		edge := &edges[i]
		if edge.ID == "" {
			edge.ID = uuid.New().String()
		}
		if edge.TransactionID == "" {
			edge.TransactionID = txn.ID
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO debt_edges (id, ledger_id, transaction_id, from_user_id, to_user_id, amount, currency)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			edge.ID, edge.LedgerID, edge.TransactionID, edge.FromUserID, edge.ToUserID,
			edge.Amount.String(), edge.Currency,
		)
		if err != nil {
			return fmt.Errorf("failed to insert debt edge: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetTransaction retrieves a transaction by ID.
func (s *SQLiteStore) GetTransaction(ctx context.Context, transactionID string) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, ledger_id, type, currency, amount, category, payer_id, rounding, tail, created_by, private, created_at
		 FROM transactions WHERE id = ?`,
		transactionID,
	)
	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", transactionID, storage.ErrNotFound)
	}
	return txn, err
}

// GetTransactionSplits retrieves a transaction's splits in input order.
func (s *SQLiteStore) GetTransactionSplits(ctx context.Context, transactionID string) ([]models.ComputedSplit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, method, share, included, amount
		 FROM transaction_splits WHERE transaction_id = ? ORDER BY position`,
		transactionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []models.ComputedSplit
	for rows.Next() {
		var (
			split         models.ComputedSplit
			method        string
			share, amount string
			included      int
		)
		if err := rows.Scan(&split.UserID, &method, &share, &included, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		split.Method = models.SplitMethod(method)
		split.Included = included != 0
		if split.Share, err = decimal.NewFromString(share); err != nil {
			return nil, fmt.Errorf("failed to parse split share: %w", err)
		}
		if split.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse split amount: %w", err)
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return splits, nil
}

// ListTransactionsByLedger retrieves a ledger's transactions, newest first.
func (s *SQLiteStore) ListTransactionsByLedger(ctx context.Context, ledgerID string) ([]*models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ledger_id, type, currency, amount, category, payer_id, rounding, tail, created_by, private, created_at
		 FROM transactions WHERE ledger_id = ? ORDER BY created_at DESC, id`,
		ledgerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, nil
}

// DeleteTransaction removes a transaction and everything it owns in
// referential order: edges, then splits, then the transaction row,
// all in one database transaction.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, transactionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM transactions WHERE id = ?", transactionID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("transaction %s: %w", transactionID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check transaction existence: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM debt_edges WHERE transaction_id = ?", transactionID); err != nil {
		return fmt.Errorf("failed to delete debt edges: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM transaction_splits WHERE transaction_id = ?", transactionID); err != nil {
		return fmt.Errorf("failed to delete splits: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListEdgesByLedger retrieves every debt edge of a ledger.
func (s *SQLiteStore) ListEdgesByLedger(ctx context.Context, ledgerID string) ([]models.DebtEdge, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ledger_id, transaction_id, from_user_id, to_user_id, amount, currency
		 FROM debt_edges WHERE ledger_id = ?`,
		ledgerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list debt edges: %w", err)
	}
	defer rows.Close()

	var edges []models.DebtEdge
	for rows.Next() {
		var (
			edge   models.DebtEdge
			txID   sql.NullString
			amount string
		)
		if err := rows.Scan(&edge.ID, &edge.LedgerID, &txID, &edge.FromUserID, &edge.ToUserID, &amount, &edge.Currency); err != nil {
			return nil, fmt.Errorf("failed to scan debt edge: %w", err)
		}
		if txID.Valid {
			edge.TransactionID = txID.String
		}
		if edge.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse edge amount: %w", err)
		}
		edges = append(edges, edge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debt edges: %w", err)
	}

	return edges, nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row scanner) (*models.Transaction, error) {
	var (
		txn             models.Transaction
		txType          string
		amount          string
		category, payer sql.NullString
		rounding, tail  string
		private         int
	)
	err := row.Scan(&txn.ID, &txn.LedgerID, &txType, &txn.Currency, &amount,
		&category, &payer, &rounding, &tail, &txn.CreatedBy, &private, &txn.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	txn.Type = models.TransactionType(txType)
	txn.Rounding = models.RoundingStrategy(rounding)
	txn.Tail = models.TailStrategy(tail)
	txn.Private = private != 0
	if category.Valid {
		txn.Category = category.String
	}
	if payer.Valid {
		txn.PayerID = payer.String
	}
	if txn.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("failed to parse transaction amount: %w", err)
	}

	return &txn, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
