package service

import "errors"

var (
	// ErrNotMember means the acting user does not belong to the ledger.
	ErrNotMember = errors.New("user is not a member of this ledger")

	// ErrInvalidAmount means the transaction amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrNotBalanceLedger means the ledger does not track balances, so
	// it has no debt edges and no settlement plan.
	ErrNotBalanceLedger = errors.New("ledger does not track balances")

	// ErrSameParty means a loan names the same user as creditor and debtor.
	ErrSameParty = errors.New("creditor and debtor must differ")

	// ErrInvalidType means the transaction type is not one the split
	// path accepts. Loans have their own entry point.
	ErrInvalidType = errors.New("transaction type must be EXPENSE or INCOME")

	// ErrMissingPayer means a balance-tracking transaction has no payer.
	ErrMissingPayer = errors.New("payer is required for balance-tracking ledgers")
)
