package models

// TransactionType classifies a money event.
type TransactionType string

const (
	// TransactionExpense is money spent by the payer on behalf of participants.
	TransactionExpense TransactionType = "EXPENSE"
	// TransactionIncome is money received by the payer on behalf of participants.
	TransactionIncome TransactionType = "INCOME"
	// TransactionLoan is a direct peer loan: one creditor, one debtor, no split.
	TransactionLoan TransactionType = "LOAN"
)

// SplitMethod determines how a transaction's total is divided among participants.
type SplitMethod string

const (
	// SplitEqual divides the total evenly across included participants.
	SplitEqual SplitMethod = "EQUAL"
	// SplitPercent divides by percentage; included shares must sum to 100.
	SplitPercent SplitMethod = "PERCENT"
	// SplitWeight divides proportionally to positive weights.
	SplitWeight SplitMethod = "WEIGHT"
	// SplitExact uses each share value directly; shares must sum to the total.
	SplitExact SplitMethod = "EXACT"
)

// RoundingStrategy controls how raw shares are rounded to the currency's
// minor unit before the tail is assigned.
type RoundingStrategy string

const (
	// RoundingNone leaves raw shares at full internal precision.
	RoundingNone RoundingStrategy = "NONE"
	// RoundingHalfUp rounds half away from zero at the minor-unit exponent.
	RoundingHalfUp RoundingStrategy = "ROUND_HALF_UP"
	// RoundingTrimToUnit truncates toward zero at the minor-unit exponent.
	RoundingTrimToUnit RoundingStrategy = "TRIM_TO_UNIT"
)

// TailStrategy selects which participant absorbs the rounding remainder.
type TailStrategy string

const (
	// TailPayer assigns the remainder to the transaction's payer.
	TailPayer TailStrategy = "PAYER"
	// TailLargestShare assigns the remainder to the participant with the
	// largest rounded share (first encountered on ties).
	TailLargestShare TailStrategy = "LARGEST_SHARE"
	// TailCreator assigns the remainder to the transaction's creator.
	TailCreator TailStrategy = "CREATOR"
)

// LedgerKind determines whether a ledger tracks running debt balances.
type LedgerKind string

const (
	// LedgerBalance tracks debt edges per transaction and supports settlement.
	LedgerBalance LedgerKind = "BALANCE"
	// LedgerSimple records transactions only; no edges, no settlement.
	LedgerSimple LedgerKind = "SIMPLE"
)
