package models

import "github.com/shopspring/decimal"

// DebtEdge is one directed "debtor owes creditor" fact in a ledger.
// Edges are appended when a transaction is created and deleted in bulk
// when it is deleted; they are never updated in place.
type DebtEdge struct {
	// ID is the unique identifier for the edge (UUID format).
	ID string

	// LedgerID is the ledger this edge belongs to.
	LedgerID string

	// TransactionID is the originating transaction. Empty for
	// non-transaction adjustments.
	TransactionID string

	// FromUserID is the creditor: the user who is owed the amount.
	FromUserID string

	// ToUserID is the debtor: the user who owes the amount.
	ToUserID string

	// Amount is the positive amount owed.
	Amount decimal.Decimal

	// Currency is the 3-letter currency code of the amount.
	Currency string
}
