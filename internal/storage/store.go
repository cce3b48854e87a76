// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/divvy/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID is an alias for GetUser kept for the auth.UserStorage
	// interface.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// CreateLedger persists a new ledger and its member list.
	// The ledger.ID field will be populated by the store if empty.
	CreateLedger(ctx context.Context, ledger *models.Ledger) error

	// GetLedger retrieves a ledger with its members.
	GetLedger(ctx context.Context, ledgerID string) (*models.Ledger, error)

	// AddLedgerMembers adds the given users to a ledger, ignoring
	// users who are already members.
	AddLedgerMembers(ctx context.Context, ledgerID string, userIDs []string) error

	// ListLedgersByMember retrieves all ledgers a user belongs to.
	ListLedgersByMember(ctx context.Context, userID string) ([]*models.Ledger, error)

	// CreateTransaction atomically persists a transaction, its
	// computed splits, and its debt edges. All three are written in
	// one database transaction: partial application is never
	// observable.
	CreateTransaction(ctx context.Context, tx *models.Transaction, splits []models.ComputedSplit, edges []models.DebtEdge) error

	// GetTransaction retrieves a transaction by ID.
	GetTransaction(ctx context.Context, transactionID string) (*models.Transaction, error)

	// GetTransactionSplits retrieves the computed splits of a transaction.
	GetTransactionSplits(ctx context.Context, transactionID string) ([]models.ComputedSplit, error)

	// ListTransactionsByLedger retrieves a ledger's transactions,
	// newest first.
	ListTransactionsByLedger(ctx context.Context, ledgerID string) ([]*models.Transaction, error)

	// DeleteTransaction atomically removes a transaction and
	// everything it owns, in referential order: edges, then splits,
	// then the transaction row.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// ListEdgesByLedger retrieves every debt edge of a ledger in one
	// consistent read.
	ListEdgesByLedger(ctx context.Context, ledgerID string) ([]models.DebtEdge, error)

	// Close releases any resources held by the store.
	Close() error
}
