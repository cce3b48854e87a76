package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/divvy/internal/models"
)

// NetBalances aggregates a ledger's full edge set into one signed net
// balance per user: positive means the user is owed money, negative
// means the user owes.
//
// Each edge adds its amount to the creditor and subtracts it from the
// debtor. Opposing edges between the same pair collapse naturally
// because both contributions land in the same two buckets, so no
// pairwise merge logic is needed. Users whose net is exactly zero are
// dropped from the result.
func NetBalances(edges []models.DebtEdge) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal)
	for _, edge := range edges {
		balances[edge.FromUserID] = balances[edge.FromUserID].Add(edge.Amount)
		balances[edge.ToUserID] = balances[edge.ToUserID].Sub(edge.Amount)
	}

	for userID, balance := range balances {
		if balance.IsZero() {
			delete(balances, userID)
		}
	}
	return balances
}
