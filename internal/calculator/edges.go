package calculator

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/divvy/internal/models"
)

// GenerateEdges derives directed debt edges from a transaction's
// computed splits. Only ledgers of the balance-tracking kind call
// this; SIMPLE ledgers skip edge generation entirely.
//
// EXPENSE: every included participant other than the payer owes the
// payer their share (creditor=payer). INCOME reverses the direction:
// the payer owes each other participant their share. No edge is
// created for the payer's own share or for zero shares, so a
// transaction with only the payer included produces no edges.
func GenerateEdges(
	txType models.TransactionType,
	payerID, currency string,
	splits []models.ComputedSplit,
	ledgerID, transactionID string,
) []models.DebtEdge {
	var edges []models.DebtEdge
	for _, split := range splits {
		if !split.Included || split.UserID == payerID || split.Amount.IsZero() {
			continue
		}

		edge := models.DebtEdge{
			ID:            uuid.New().String(),
			LedgerID:      ledgerID,
			TransactionID: transactionID,
			Amount:        split.Amount,
			Currency:      currency,
		}
		switch txType {
		case models.TransactionIncome:
			edge.FromUserID = split.UserID
			edge.ToUserID = payerID
		default: // EXPENSE
			edge.FromUserID = payerID
			edge.ToUserID = split.UserID
		}
		edges = append(edges, edge)
	}
	return edges
}

// LoanEdge builds the single edge representing a peer loan. Loans
// bypass the allocator: the creditor lent the full amount to the
// debtor.
func LoanEdge(ledgerID, transactionID, creditorID, debtorID string, amount decimal.Decimal, currency string) models.DebtEdge {
	return models.DebtEdge{
		ID:            uuid.New().String(),
		LedgerID:      ledgerID,
		TransactionID: transactionID,
		FromUserID:    creditorID,
		ToUserID:      debtorID,
		Amount:        amount,
		Currency:      currency,
	}
}
