package models

import "github.com/shopspring/decimal"

// Transaction is an immutable record of one money event in a ledger.
// The core never mutates a transaction after creation; updates are
// modeled as delete followed by re-create by the caller.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	// LedgerID is the ledger this transaction belongs to.
	LedgerID string

	// Type is EXPENSE, INCOME, or LOAN.
	Type TransactionType

	// Currency is the 3-letter currency code. Must match the ledger's
	// base currency.
	Currency string

	// Amount is the positive total of the transaction.
	Amount decimal.Decimal

	// Category is an optional free-form category name.
	Category string

	// PayerID is the user who paid (EXPENSE) or received (INCOME) the
	// total. For LOAN it is the creditor. Optional for SIMPLE ledgers.
	PayerID string

	// Rounding selects how per-participant shares are rounded.
	Rounding RoundingStrategy

	// Tail selects who absorbs the rounding remainder.
	Tail TailStrategy

	// CreatedBy is the user who recorded the transaction.
	CreatedBy string

	// Private hides the transaction from non-participant members.
	Private bool

	// CreatedAt is the Unix timestamp when the transaction was recorded.
	CreatedAt int64
}

// SplitItem is one participant's requested share of a transaction.
// All items in one split set share the same method.
type SplitItem struct {
	// UserID identifies the participant.
	UserID string

	// Method is the split method shared by the whole set.
	Method SplitMethod

	// Share is the method-dependent share value: ignored for EQUAL, a
	// percentage for PERCENT, a weight for WEIGHT, an amount for EXACT.
	Share decimal.Decimal

	// Included marks whether this participant takes part in the split.
	// Excluded items are carried through with a zero computed amount.
	Included bool
}

// ComputedSplit is a SplitItem plus its final allocated amount.
// Invariant: the computed amounts of included items sum exactly to the
// transaction total.
type ComputedSplit struct {
	SplitItem

	// Amount is this participant's final share of the total.
	Amount decimal.Decimal
}
