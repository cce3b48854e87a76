package calculator

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/divvy/internal/models"
)

func balanceMap(entries map[string]string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(entries))
	for userID, amount := range entries {
		out[userID] = decimal.RequireFromString(amount)
	}
	return out
}

func TestPlanSettlement(t *testing.T) {
	tests := []struct {
		name     string
		balances map[string]string
		want     []models.Transfer
	}{
		{
			name:     "single pair",
			balances: map[string]string{"A": "20", "B": "-20"},
			want: []models.Transfer{
				{FromUserID: "B", ToUserID: "A", Amount: decimal.RequireFromString("20")},
			},
		},
		{
			name:     "largest creditor matched first",
			balances: map[string]string{"A": "50", "B": "-35", "C": "-15"},
			want: []models.Transfer{
				{FromUserID: "B", ToUserID: "A", Amount: decimal.RequireFromString("35")},
				{FromUserID: "C", ToUserID: "A", Amount: decimal.RequireFromString("15")},
			},
		},
		{
			name:     "creditor remainder is pushed back",
			balances: map[string]string{"A": "60", "B": "-40", "C": "-20"},
			want: []models.Transfer{
				{FromUserID: "B", ToUserID: "A", Amount: decimal.RequireFromString("40")},
				{FromUserID: "C", ToUserID: "A", Amount: decimal.RequireFromString("20")},
			},
		},
		{
			name:     "equal pair extinguishes both sides",
			balances: map[string]string{"A": "30", "B": "-30", "C": "10", "D": "-10"},
			want: []models.Transfer{
				{FromUserID: "B", ToUserID: "A", Amount: decimal.RequireFromString("30")},
				{FromUserID: "D", ToUserID: "C", Amount: decimal.RequireFromString("10")},
			},
		},
		{
			name:     "all zero",
			balances: map[string]string{},
			want:     nil,
		},
		{
			name:     "only creditors yields empty plan",
			balances: map[string]string{"A": "10", "B": "5"},
			want:     nil,
		},
		{
			name:     "tie broken by sorted user id",
			balances: map[string]string{"B": "10", "A": "10", "C": "-20"},
			want: []models.Transfer{
				{FromUserID: "C", ToUserID: "A", Amount: decimal.RequireFromString("10")},
				{FromUserID: "C", ToUserID: "B", Amount: decimal.RequireFromString("10")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanSettlement(balanceMap(tt.balances), nil)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d transfers, want %d: %+v", len(got), len(tt.want), got)
			}
			for i, want := range tt.want {
				if got[i].FromUserID != want.FromUserID || got[i].ToUserID != want.ToUserID {
					t.Errorf("transfer %d = %s -> %s, want %s -> %s",
						i, got[i].FromUserID, got[i].ToUserID, want.FromUserID, want.ToUserID)
				}
				if !got[i].Amount.Equal(want.Amount) {
					t.Errorf("transfer %d amount = %s, want %s", i, got[i].Amount, want.Amount)
				}
			}
		})
	}
}

func TestPlanSettlementConservation(t *testing.T) {
	balances := balanceMap(map[string]string{
		"A": "73.45",
		"B": "-12.10",
		"C": "26.55",
		"D": "-61.35",
		"E": "-26.55",
	})

	transfers := PlanSettlement(balances, nil)

	if max := len(balances) - 1; len(transfers) > max {
		t.Errorf("got %d transfers, want at most %d", len(transfers), max)
	}

	received := make(map[string]decimal.Decimal)
	paid := make(map[string]decimal.Decimal)
	for _, tr := range transfers {
		if !tr.Amount.IsPositive() {
			t.Errorf("transfer %s -> %s has non-positive amount %s", tr.FromUserID, tr.ToUserID, tr.Amount)
		}
		received[tr.ToUserID] = received[tr.ToUserID].Add(tr.Amount)
		paid[tr.FromUserID] = paid[tr.FromUserID].Add(tr.Amount)
	}

	for userID, balance := range balances {
		if balance.IsPositive() {
			if !received[userID].Equal(balance) {
				t.Errorf("creditor %s received %s, want %s", userID, received[userID], balance)
			}
		} else {
			if !paid[userID].Equal(balance.Neg()) {
				t.Errorf("debtor %s paid %s, want %s", userID, paid[userID], balance.Neg())
			}
		}
	}
}

func TestPlanSettlementDeterminism(t *testing.T) {
	balances := balanceMap(map[string]string{
		"A": "10", "B": "10", "C": "10", "D": "-15", "E": "-15",
	})

	first := PlanSettlement(balances, nil)
	second := PlanSettlement(balances, nil)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs over the same balances diverged:\n%+v\n%+v", first, second)
	}
}

func TestGreedyStrategyIgnoresInertConfig(t *testing.T) {
	// The config fields are an extension point: accepted at the
	// boundary but not consumed by the greedy matcher.
	strategy := NewGreedyStrategy(SettlementConfig{
		MaxTransferAmount:     decimal.RequireFromString("1.00"),
		ForceMinCostFlow:      true,
		FallbackTransferCount: 1,
	})
	plain := NewGreedyStrategy(SettlementConfig{})

	balances := balanceMap(map[string]string{"A": "20", "B": "-20"})
	if got, want := strategy.Plan(balances, nil), plain.Plan(balances, nil); !reflect.DeepEqual(got, want) {
		t.Errorf("config changed greedy output: %+v vs %+v", got, want)
	}
}

func TestPlanSettlementNames(t *testing.T) {
	names := map[string]string{"A": "Alice", "B": "Bob"}
	lookup := func(userID string) string { return names[userID] }

	transfers := PlanSettlement(balanceMap(map[string]string{"A": "5", "B": "-5"}), lookup)
	if len(transfers) != 1 {
		t.Fatalf("got %d transfers, want 1", len(transfers))
	}
	if transfers[0].FromName != "Bob" || transfers[0].ToName != "Alice" {
		t.Errorf("names = %q -> %q, want Bob -> Alice", transfers[0].FromName, transfers[0].ToName)
	}
}
