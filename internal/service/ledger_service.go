// Package service wires the debt accounting engine to storage. Every
// call takes the acting user's id explicitly; there is no ambient
// current-user state.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/storage"
)

// LedgerService manages ledgers and their membership.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

// Create creates a ledger. The creator is always a member, whether or
// not they appear in memberIDs.
func (s *LedgerService) Create(ctx context.Context, actorID, name string, kind models.LedgerKind, currency string, memberIDs []string) (*models.Ledger, error) {
	members := memberIDs
	if !contains(members, actorID) {
		members = append([]string{actorID}, members...)
	}

	ledger := &models.Ledger{
		Name:      name,
		Kind:      kind,
		Currency:  currency,
		Members:   members,
		CreatedBy: actorID,
	}
	if err := s.store.CreateLedger(ctx, ledger); err != nil {
		return nil, fmt.Errorf("create ledger: %w", err)
	}

	slog.Info("Ledger created", "ledger_id", ledger.ID, "kind", kind, "currency", currency, "members", len(members))
	return ledger, nil
}

// Get retrieves a ledger the actor belongs to.
func (s *LedgerService) Get(ctx context.Context, actorID, ledgerID string) (*models.Ledger, error) {
	ledger, err := s.store.GetLedger(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	if !ledger.HasMember(actorID) {
		return nil, ErrNotMember
	}
	return ledger, nil
}

// AddMembers adds users to a ledger the actor belongs to.
func (s *LedgerService) AddMembers(ctx context.Context, actorID, ledgerID string, userIDs []string) (*models.Ledger, error) {
	if _, err := s.Get(ctx, actorID, ledgerID); err != nil {
		return nil, err
	}
	if err := s.store.AddLedgerMembers(ctx, ledgerID, userIDs); err != nil {
		return nil, fmt.Errorf("add members: %w", err)
	}
	return s.store.GetLedger(ctx, ledgerID)
}

// List retrieves the actor's ledgers.
func (s *LedgerService) List(ctx context.Context, actorID string) ([]*models.Ledger, error) {
	return s.store.ListLedgersByMember(ctx, actorID)
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
