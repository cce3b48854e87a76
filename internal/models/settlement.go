package models

import "github.com/shopspring/decimal"

// Transfer is one payment in a settlement plan.
type Transfer struct {
	// FromUserID is the payer (a net debtor).
	FromUserID string

	// FromName is the payer's display name.
	FromName string

	// ToUserID is the receiver (a net creditor).
	ToUserID string

	// ToName is the receiver's display name.
	ToName string

	// Amount is the positive payment amount.
	Amount decimal.Decimal
}

// SettlementPlan is the ordered transfer list that zeroes every net
// balance in a ledger. Plans are derived views: recomputed from the
// full edge set on each request, never stored.
type SettlementPlan struct {
	// LedgerID is the ledger the plan settles.
	LedgerID string

	// Currency is the ledger's base currency.
	Currency string

	// Transfers is the ordered list of payments.
	Transfers []Transfer

	// Count is len(Transfers), kept explicit for API responses.
	Count int
}
