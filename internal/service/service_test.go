package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/storage/sqlite"
)

// testEnv wires services over a temp-file sqlite store, the same way
// main does, minus the HTTP layer.
type testEnv struct {
	store        *sqlite.SQLiteStore
	ledgers      *LedgerService
	transactions *TransactionService
	settlements  *SettlementService
	users        map[string]string // display name -> user id
}

func newTestEnv(t *testing.T, names ...string) *testEnv {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "divvy-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	env := &testEnv{
		store:        store,
		ledgers:      NewLedgerService(store),
		transactions: NewTransactionService(store),
		settlements:  NewSettlementService(store, nil),
		users:        make(map[string]string),
	}

	ctx := context.Background()
	for _, name := range names {
		user := models.NewUser(name+"@example.com", name, "hash")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("failed to seed user %s: %v", name, err)
		}
		env.users[name] = user.ID
	}
	return env
}

func (e *testEnv) newLedger(t *testing.T, kind models.LedgerKind, creator string, members ...string) *models.Ledger {
	t.Helper()

	memberIDs := make([]string, 0, len(members))
	for _, name := range members {
		memberIDs = append(memberIDs, e.users[name])
	}
	ledger, err := e.ledgers.Create(context.Background(), e.users[creator], "Test Ledger", kind, "EUR", memberIDs)
	if err != nil {
		t.Fatalf("failed to create ledger: %v", err)
	}
	return ledger
}

func equalSplits(e *testEnv, names ...string) []models.SplitItem {
	items := make([]models.SplitItem, 0, len(names))
	for _, name := range names {
		items = append(items, models.SplitItem{
			UserID:   e.users[name],
			Method:   models.SplitEqual,
			Included: true,
		})
	}
	return items
}
