package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/storage"
)

// CreateLedger persists a ledger and its member list in one transaction.
func (s *SQLiteStore) CreateLedger(ctx context.Context, ledger *models.Ledger) error {
	if ledger.ID == "" {
		ledger.ID = uuid.New().String()
	}
	if ledger.CreatedAt == 0 {
		ledger.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO ledgers (id, name, kind, currency, created_by, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		ledger.ID, ledger.Name, string(ledger.Kind), ledger.Currency, ledger.CreatedBy, ledger.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger: %w", err)
	}

	for _, userID := range ledger.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO ledger_members (ledger_id, user_id) VALUES (?, ?)",
			ledger.ID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert ledger member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetLedger retrieves a ledger with its members.
func (s *SQLiteStore) GetLedger(ctx context.Context, ledgerID string) (*models.Ledger, error) {
	ledger := &models.Ledger{}
	var kind string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, kind, currency, created_by, created_at FROM ledgers WHERE id = ?",
		ledgerID,
	).Scan(&ledger.ID, &ledger.Name, &kind, &ledger.Currency, &ledger.CreatedBy, &ledger.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ledger %s: %w", ledgerID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}
	ledger.Kind = models.LedgerKind(kind)

	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM ledger_members WHERE ledger_id = ? ORDER BY user_id",
		ledgerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan ledger member: %w", err)
		}
		ledger.Members = append(ledger.Members, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger members: %w", err)
	}

	return ledger, nil
}

// AddLedgerMembers adds users to a ledger, skipping existing members.
func (s *SQLiteStore) AddLedgerMembers(ctx context.Context, ledgerID string, userIDs []string) error {
	for _, userID := range userIDs {
		_, err := s.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO ledger_members (ledger_id, user_id) VALUES (?, ?)",
			ledgerID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to add ledger member: %w", err)
		}
	}
	return nil
}

// ListLedgersByMember retrieves all ledgers a user belongs to.
func (s *SQLiteStore) ListLedgersByMember(ctx context.Context, userID string) ([]*models.Ledger, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT l.id FROM ledgers l
		 JOIN ledger_members m ON m.ledger_id = l.id
		 WHERE m.user_id = ? ORDER BY l.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan ledger id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledgers: %w", err)
	}

	ledgers := make([]*models.Ledger, 0, len(ids))
	for _, id := range ids {
		ledger, err := s.GetLedger(ctx, id)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, ledger)
	}
	return ledgers, nil
}
