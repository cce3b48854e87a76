package models

// Ledger represents a named group of users sharing transactions and debts.
// A ledger owns its transactions, splits, and debt edges: deleting a
// transaction cascades to its edges and splits.
type Ledger struct {
	// ID is the unique identifier for the ledger (UUID format).
	ID string

	// Name is the display name of the ledger (e.g., "Roommates", "Ski Trip").
	Name string

	// Kind controls whether debt edges are generated for this ledger.
	// Only LedgerBalance ledgers support settlement plans.
	Kind LedgerKind

	// Currency is the ledger's base currency (ISO 4217 code). Every
	// transaction must be recorded in this currency; there is no
	// implicit conversion.
	Currency string

	// Members is the list of member user IDs.
	Members []string

	// CreatedBy is the user ID of the ledger's creator.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the ledger was created.
	CreatedAt int64
}

// HasMember reports whether the given user belongs to the ledger.
func (l *Ledger) HasMember(userID string) bool {
	for _, m := range l.Members {
		if m == userID {
			return true
		}
	}
	return false
}
