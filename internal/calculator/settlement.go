package calculator

import (
	"container/heap"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/divvy/internal/models"
)

// NameLookup resolves a user id to a display name for transfer rows.
type NameLookup func(userID string) string

// SettlementConfig is the settlement value object accepted at the
// boundary. Only the greedy matcher is implemented today; the
// remaining fields are accepted but not consumed, reserved for an
// alternative strategy behind SettlementStrategy.
type SettlementConfig struct {
	// MaxTransferAmount caps a single transfer. Not consumed.
	MaxTransferAmount decimal.Decimal

	// AllowedChannels maps "payer:receiver" pairs to permitted payment
	// channels. Not consumed.
	AllowedChannels map[string][]string

	// ForceMinCostFlow requests the min-cost-flow solver. Not
	// implemented; the greedy matcher runs regardless.
	ForceMinCostFlow bool

	// FallbackTransferCount is the transfer-count threshold for
	// switching strategies. Not consumed.
	FallbackTransferCount int

	// ConversionRates maps currency codes to rates for cross-currency
	// settlement. Not consumed.
	ConversionRates map[string]decimal.Decimal
}

// SettlementStrategy turns net balances into an ordered transfer
// list. GreedyStrategy is the only implementation; the interface is
// the extension point for a true minimum-edge solver.
type SettlementStrategy interface {
	Plan(balances map[string]decimal.Decimal, names NameLookup) []models.Transfer
}

// GreedyStrategy matches the largest creditor against the largest
// debtor until one side is exhausted. Polynomial and near-minimal in
// practice, but not proven globally optimal in every topology.
type GreedyStrategy struct {
	config SettlementConfig
}

// NewGreedyStrategy creates a greedy settlement strategy with the
// given configuration.
func NewGreedyStrategy(config SettlementConfig) *GreedyStrategy {
	return &GreedyStrategy{config: config}
}

// PlanSettlement runs the default greedy strategy over the balances.
func PlanSettlement(balances map[string]decimal.Decimal, names NameLookup) []models.Transfer {
	return NewGreedyStrategy(SettlementConfig{}).Plan(balances, names)
}

// Plan produces at most n-1 transfers for n nonzero balances.
//
// Parties enter the heaps in sorted user-id order, and equal amounts
// keep that insertion order, so two runs over the same balance map
// yield the identical transfer sequence.
func (g *GreedyStrategy) Plan(balances map[string]decimal.Decimal, names NameLookup) []models.Transfer {
	if names == nil {
		names = func(string) string { return "" }
	}

	userIDs := make([]string, 0, len(balances))
	for userID := range balances {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	creditors := &partyHeap{}
	debtors := &partyHeap{}
	for _, userID := range userIDs {
		balance := balances[userID]
		switch {
		case balance.IsPositive():
			creditors.add(party{userID: userID, amount: balance})
		case balance.IsNegative():
			debtors.add(party{userID: userID, amount: balance.Neg()})
		}
	}
	heap.Init(creditors)
	heap.Init(debtors)

	// Bounded loop: every iteration fully extinguishes at least one
	// party, so this runs at most n-1 times.
	var transfers []models.Transfer
	for creditors.Len() > 0 && debtors.Len() > 0 {
		creditor := heap.Pop(creditors).(party)
		debtor := heap.Pop(debtors).(party)

		amount := decimal.Min(creditor.amount, debtor.amount)
		transfers = append(transfers, models.Transfer{
			FromUserID: debtor.userID,
			FromName:   names(debtor.userID),
			ToUserID:   creditor.userID,
			ToName:     names(creditor.userID),
			Amount:     amount,
		})

		if rest := creditor.amount.Sub(amount); rest.IsPositive() {
			creditor.amount = rest
			heap.Push(creditors, creditor)
		}
		if rest := debtor.amount.Sub(amount); rest.IsPositive() {
			debtor.amount = rest
			heap.Push(debtors, debtor)
		}
	}

	// Residuals on one side mean the balances did not sum to zero;
	// plans are advisory, so they are dropped silently.
	return transfers
}

// party is one side of a pending settlement match.
type party struct {
	userID string
	amount decimal.Decimal
	seq    int
}

// partyHeap is a max-heap on remaining amount; ties fall back to
// insertion order so the matching is deterministic.
type partyHeap struct {
	parties []party
	nextSeq int
}

// add appends a party before heap initialization, stamping its
// insertion order.
func (h *partyHeap) add(p party) {
	p.seq = h.nextSeq
	h.nextSeq++
	h.parties = append(h.parties, p)
}

func (h *partyHeap) Len() int { return len(h.parties) }

func (h *partyHeap) Less(i, j int) bool {
	if !h.parties[i].amount.Equal(h.parties[j].amount) {
		return h.parties[i].amount.GreaterThan(h.parties[j].amount)
	}
	return h.parties[i].seq < h.parties[j].seq
}

func (h *partyHeap) Swap(i, j int) {
	h.parties[i], h.parties[j] = h.parties[j], h.parties[i]
}

func (h *partyHeap) Push(x any) {
	p := x.(party)
	p.seq = h.nextSeq
	h.nextSeq++
	h.parties = append(h.parties, p)
}

func (h *partyHeap) Pop() any {
	old := h.parties
	n := len(old)
	p := old[n-1]
	h.parties = old[:n-1]
	return p
}
