package calculator

import "errors"

// Validation failures surfaced by the allocator and the write path.
// Each is a distinct condition; callers match with errors.Is.
var (
	// ErrMissingSplits means a split-required transaction carried an
	// empty or absent split list.
	ErrMissingSplits = errors.New("split list is empty or missing")

	// ErrDuplicateParticipant means the same user appears twice in one
	// split set.
	ErrDuplicateParticipant = errors.New("duplicate participant in split set")

	// ErrNoIncludedParticipant means every item in the set has included=false.
	ErrNoIncludedParticipant = errors.New("no included participants")

	// ErrInvalidSplitMethod means the split method is not one of
	// EQUAL, PERCENT, WEIGHT, EXACT.
	ErrInvalidSplitMethod = errors.New("invalid split method")

	// ErrPercentSumMismatch means included PERCENT shares do not sum
	// to exactly 100.
	ErrPercentSumMismatch = errors.New("percent shares must sum to 100")

	// ErrExactSumMismatch means included EXACT shares do not sum to
	// the transaction total.
	ErrExactSumMismatch = errors.New("exact shares must sum to the total")

	// ErrInvalidWeight means a WEIGHT share is zero or negative.
	ErrInvalidWeight = errors.New("weight shares must be positive")

	// ErrCurrencyMismatch means the transaction currency differs from
	// the ledger's base currency. There is no implicit conversion.
	ErrCurrencyMismatch = errors.New("transaction currency does not match ledger currency")
)
