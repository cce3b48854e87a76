package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/divvy/internal/models"
)

func TestSettlementServicePlan(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "alice", "bob", "carol")
	ledger := env.newLedger(t, models.LedgerBalance, "alice", "alice", "bob", "carol")

	// Alice fronts 90.00 split three ways, then Bob lends Carol 10.00.
	// Net: alice +60, bob -20, carol -40 (carol owes the loan too).
	_, _, err := env.transactions.Create(ctx, env.users["alice"], TransactionInput{
		LedgerID: ledger.ID,
		Type:     models.TransactionExpense,
		Currency: "EUR",
		Amount:   decimal.RequireFromString("90.00"),
		PayerID:  env.users["alice"],
		Splits:   equalSplits(env, "alice", "bob", "carol"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := env.transactions.CreateLoan(ctx, env.users["bob"], LoanInput{
		LedgerID:   ledger.ID,
		CreditorID: env.users["bob"],
		DebtorID:   env.users["carol"],
		Currency:   "EUR",
		Amount:     decimal.RequireFromString("10.00"),
	}); err != nil {
		t.Fatalf("CreateLoan failed: %v", err)
	}

	plan, err := env.settlements.Plan(ctx, env.users["alice"], ledger.ID)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if plan.Currency != "EUR" || plan.LedgerID != ledger.ID {
		t.Errorf("plan header wrong: %+v", plan)
	}
	if plan.Count != len(plan.Transfers) {
		t.Errorf("plan count = %d, transfers = %d", plan.Count, len(plan.Transfers))
	}

	// Conservation: each creditor receives exactly their net balance.
	received := make(map[string]decimal.Decimal)
	paid := make(map[string]decimal.Decimal)
	for _, tr := range plan.Transfers {
		received[tr.ToUserID] = received[tr.ToUserID].Add(tr.Amount)
		paid[tr.FromUserID] = paid[tr.FromUserID].Add(tr.Amount)
	}
	if !received[env.users["alice"]].Equal(decimal.RequireFromString("60.00")) {
		t.Errorf("alice receives %s, want 60.00", received[env.users["alice"]])
	}
	if !paid[env.users["carol"]].Equal(decimal.RequireFromString("40.00")) {
		t.Errorf("carol pays %s, want 40.00", paid[env.users["carol"]])
	}
	if !paid[env.users["bob"]].Equal(decimal.RequireFromString("20.00")) {
		t.Errorf("bob pays %s, want 20.00", paid[env.users["bob"]])
	}

	// Display names come from the user records.
	for _, tr := range plan.Transfers {
		if tr.FromName == "" || tr.ToName == "" {
			t.Errorf("transfer missing display names: %+v", tr)
		}
	}
}

func TestSettlementServiceEmptyLedger(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "alice", "bob")
	ledger := env.newLedger(t, models.LedgerBalance, "alice", "alice", "bob")

	plan, err := env.settlements.Plan(ctx, env.users["alice"], ledger.ID)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if plan.Count != 0 || len(plan.Transfers) != 0 {
		t.Errorf("empty ledger plan has %d transfers, want 0", len(plan.Transfers))
	}
}

func TestSettlementServiceDeleteRestoresBalance(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "alice", "bob")
	ledger := env.newLedger(t, models.LedgerBalance, "alice", "alice", "bob")

	txn, _, err := env.transactions.Create(ctx, env.users["alice"], TransactionInput{
		LedgerID: ledger.ID,
		Type:     models.TransactionExpense,
		Currency: "EUR",
		Amount:   decimal.RequireFromString("50.00"),
		PayerID:  env.users["alice"],
		Splits:   equalSplits(env, "alice", "bob"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	plan, err := env.settlements.Plan(ctx, env.users["bob"], ledger.ID)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if plan.Count != 1 {
		t.Fatalf("got %d transfers before delete, want 1", plan.Count)
	}

	if err := env.transactions.Delete(ctx, env.users["alice"], txn.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	plan, err = env.settlements.Plan(ctx, env.users["bob"], ledger.ID)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if plan.Count != 0 {
		t.Errorf("got %d transfers after delete, want 0", plan.Count)
	}
}

func TestSettlementServiceSimpleLedger(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "alice")
	ledger := env.newLedger(t, models.LedgerSimple, "alice", "alice")

	if _, err := env.settlements.Plan(ctx, env.users["alice"], ledger.ID); !errors.Is(err, ErrNotBalanceLedger) {
		t.Errorf("error = %v, want ErrNotBalanceLedger", err)
	}
}

func TestSettlementServiceIncomeReversesDirection(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "alice", "bob")
	ledger := env.newLedger(t, models.LedgerBalance, "alice", "alice", "bob")

	// Alice collects 80.00 of shared income: she owes Bob his half.
	_, _, err := env.transactions.Create(ctx, env.users["alice"], TransactionInput{
		LedgerID: ledger.ID,
		Type:     models.TransactionIncome,
		Currency: "EUR",
		Amount:   decimal.RequireFromString("80.00"),
		PayerID:  env.users["alice"],
		Splits:   equalSplits(env, "alice", "bob"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	plan, err := env.settlements.Plan(ctx, env.users["alice"], ledger.ID)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if plan.Count != 1 {
		t.Fatalf("got %d transfers, want 1", plan.Count)
	}
	tr := plan.Transfers[0]
	if tr.FromUserID != env.users["alice"] || tr.ToUserID != env.users["bob"] {
		t.Errorf("transfer = %s -> %s, want alice -> bob", tr.FromUserID, tr.ToUserID)
	}
	if !tr.Amount.Equal(decimal.RequireFromString("40.00")) {
		t.Errorf("transfer amount = %s, want 40.00", tr.Amount)
	}
}
