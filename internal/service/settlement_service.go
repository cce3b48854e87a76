package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/divvy/internal/calculator"
	"github.com/mmynk/divvy/internal/middleware"
	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/storage"
)

// SettlementService implements the read path: net the ledger's full
// edge set into per-user balances, then plan the transfers that zero
// them. Plans are advisory views computed from whatever snapshot the
// store read sees; nothing is written.
type SettlementService struct {
	store    storage.Store
	strategy calculator.SettlementStrategy
}

// NewSettlementService creates a settlement service. A nil strategy
// selects the default greedy matcher.
func NewSettlementService(store storage.Store, strategy calculator.SettlementStrategy) *SettlementService {
	if strategy == nil {
		strategy = calculator.NewGreedyStrategy(calculator.SettlementConfig{})
	}
	return &SettlementService{store: store, strategy: strategy}
}

// Plan computes the settlement plan for a ledger the actor belongs to.
func (s *SettlementService) Plan(ctx context.Context, actorID, ledgerID string) (*models.SettlementPlan, error) {
	ledger, err := s.store.GetLedger(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	if !ledger.HasMember(actorID) {
		return nil, ErrNotMember
	}
	if ledger.Kind != models.LedgerBalance {
		return nil, ErrNotBalanceLedger
	}

	edges, err := s.store.ListEdgesByLedger(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	balances := calculator.NetBalances(edges)

	// Resolve display names once per involved user; a missing user
	// degrades to an empty name rather than failing the plan.
	names := make(map[string]string, len(balances))
	for userID := range balances {
		if user, err := s.store.GetUser(ctx, userID); err == nil {
			names[userID] = user.DisplayName
		}
	}

	transfers := s.strategy.Plan(balances, func(userID string) string { return names[userID] })

	middleware.SettlementPlans.Inc()
	slog.Info("Settlement plan computed",
		"ledger_id", ledgerID,
		"edges", len(edges),
		"parties", len(balances),
		"transfers", len(transfers),
	)
	return &models.SettlementPlan{
		LedgerID:  ledgerID,
		Currency:  ledger.Currency,
		Transfers: transfers,
		Count:     len(transfers),
	}, nil
}
