package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/divvy/internal/models"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func item(userID string, method models.SplitMethod, share string, included bool) models.SplitItem {
	d, _ := decimal.NewFromString(share)
	return models.SplitItem{UserID: userID, Method: method, Share: d, Included: included}
}

func amounts(splits []models.ComputedSplit) map[string]string {
	out := make(map[string]string, len(splits))
	for _, s := range splits {
		out[s.UserID] = s.Amount.String()
	}
	return out
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name     string
		total    string
		exponent int32
		items    []models.SplitItem
		rounding models.RoundingStrategy
		tail     models.TailStrategy
		payerID  string
		creator  string
		wantErr  error
		want     map[string]string // userID -> amount
	}{
		{
			name:     "equal three-way half-up with payer tail",
			total:    "100.00",
			exponent: 2,
			items: []models.SplitItem{
				item("A", models.SplitEqual, "0", true),
				item("B", models.SplitEqual, "0", true),
				item("C", models.SplitEqual, "0", true),
			},
			rounding: models.RoundingHalfUp,
			tail:     models.TailPayer,
			payerID:  "A",
			want:     map[string]string{"A": "33.34", "B": "33.33", "C": "33.33"},
		},
		{
			name:     "equal two-way negative tail",
			total:    "100.01",
			exponent: 2,
			items: []models.SplitItem{
				item("A", models.SplitEqual, "0", true),
				item("B", models.SplitEqual, "0", true),
			},
			rounding: models.RoundingHalfUp,
			tail:     models.TailPayer,
			payerID:  "B",
			// Raw 50.005 rounds half away from zero to 50.01 each,
			// so the payer absorbs a -0.01 tail.
			want: map[string]string{"A": "50.01", "B": "50"},
		},
		{
			name:     "percent sixty forty no tail",
			total:    "120.00",
			exponent: 2,
			items: []models.SplitItem{
				item("A", models.SplitPercent, "60", true),
				item("B", models.SplitPercent, "40", true),
			},
			rounding: models.RoundingHalfUp,
			tail:     models.TailPayer,
			payerID:  "A",
			want:     map[string]string{"A": "72", "B": "48"},
		},
		{
			name:     "weight proportional",
			total:    "100.00",
			exponent: 2,
			items: []models.SplitItem{
				item("A", models.SplitWeight, "1", true),
				item("B", models.SplitWeight, "2", true),
			},
			rounding: models.RoundingHalfUp,
			tail:     models.TailLargestShare,
			want:     map[string]string{"A": "33.33", "B": "66.67"},
		},
		{
			name:     "exact passthrough",
			total:    "50.00",
			exponent: 2,
			items: []models.SplitItem{
				item("A", models.SplitExact, "20.00", true),
				item("B", models.SplitExact, "30.00", true),
			},
			rounding: models.RoundingNone,
			tail:     models.TailCreator,
			creator:  "A",
			want:     map[string]string{"A": "20", "B": "30"},
		},
		{
			name:     "trim to unit sends tail to first largest",
			total:    "100.00",
			exponent: 2,
			items: []models.SplitItem{
				item("A", models.SplitEqual, "0", true),
				item("B", models.SplitEqual, "0", true),
				item("C", models.SplitEqual, "0", true),
			},
			rounding: models.RoundingTrimToUnit,
			tail:     models.TailLargestShare,
			// All truncate to 33.33; the tie resolves to the first
			// encountered participant.
			want: map[string]string{"A": "33.34", "B": "33.33", "C": "33.33"},
		},
		{
			name:     "creator tail",
			total:    "10.00",
			exponent: 2,
			items: []models.SplitItem{
				item("A", models.SplitEqual, "0", true),
				item("B", models.SplitEqual, "0", true),
				item("C", models.SplitEqual, "0", true),
			},
			rounding: models.RoundingHalfUp,
			tail:     models.TailCreator,
			creator:  "C",
			want:     map[string]string{"A": "3.33", "B": "3.33", "C": "3.34"},
		},
		{
			name:     "payer excluded reroutes tail",
			total:    "100.00",
			exponent: 2,
			items: []models.SplitItem{
				item("B", models.SplitEqual, "0", true),
				item("C", models.SplitEqual, "0", true),
				item("D", models.SplitEqual, "0", true),
			},
			rounding: models.RoundingHalfUp,
			tail:     models.TailPayer,
			payerID:  "A",
			// The payer is not an included participant, so the tail
			// reroutes to the largest (here: first) included share
			// instead of being dropped.
			want: map[string]string{"B": "33.34", "C": "33.33", "D": "33.33"},
		},
		{
			name:     "excluded item carries zero",
			total:    "60.00",
			exponent: 2,
			items: []models.SplitItem{
				item("A", models.SplitEqual, "0", true),
				item("B", models.SplitEqual, "0", false),
				item("C", models.SplitEqual, "0", true),
			},
			rounding: models.RoundingHalfUp,
			tail:     models.TailPayer,
			payerID:  "A",
			want:     map[string]string{"A": "30", "B": "0", "C": "30"},
		},
		{
			name:     "no rounding keeps full precision",
			total:    "100.00",
			exponent: 2,
			items: []models.SplitItem{
				item("A", models.SplitPercent, "50", true),
				item("B", models.SplitPercent, "50", true),
			},
			rounding: models.RoundingNone,
			tail:     models.TailPayer,
			payerID:  "A",
			want:     map[string]string{"A": "50", "B": "50"},
		},
		{
			name:     "empty split list",
			total:    "10.00",
			exponent: 2,
			items:    nil,
			wantErr:  ErrMissingSplits,
		},
		{
			name:     "duplicate participant",
			total:    "10.00",
			exponent: 2,
			items: []models.SplitItem{
				item("A", models.SplitEqual, "0", true),
				item("A", models.SplitEqual, "0", true),
			},
			wantErr: ErrDuplicateParticipant,
		},
		{
			name:     "all excluded",
			total:    "10.00",
			exponent: 2,
			items: []models.SplitItem{
				item("A", models.SplitEqual, "0", false),
				item("B", models.SplitEqual, "0", false),
			},
			wantErr: ErrNoIncludedParticipant,
		},
		{
			name:     "invalid method",
			total:    "10.00",
			exponent: 2,
			items: []models.SplitItem{
				item("A", models.SplitMethod("HALVSIES"), "0", true),
			},
			wantErr: ErrInvalidSplitMethod,
		},
		{
			name:     "percent sum mismatch",
			total:    "10.00",
			exponent: 2,
			items: []models.SplitItem{
				item("A", models.SplitPercent, "60", true),
				item("B", models.SplitPercent, "50", true),
			},
			wantErr: ErrPercentSumMismatch,
		},
		{
			name:     "negative percent share",
			total:    "10.00",
			exponent: 2,
			items: []models.SplitItem{
				item("A", models.SplitPercent, "-10", true),
				item("B", models.SplitPercent, "110", true),
			},
			wantErr: ErrPercentSumMismatch,
		},
		{
			name:     "exact sum mismatch",
			total:    "50.00",
			exponent: 2,
			items: []models.SplitItem{
				item("A", models.SplitExact, "20.00", true),
				item("B", models.SplitExact, "20.00", true),
			},
			wantErr: ErrExactSumMismatch,
		},
		{
			name:     "zero weight",
			total:    "10.00",
			exponent: 2,
			items: []models.SplitItem{
				item("A", models.SplitWeight, "0", true),
				item("B", models.SplitWeight, "3", true),
			},
			wantErr: ErrInvalidWeight,
		},
		{
			name:     "negative weight",
			total:    "10.00",
			exponent: 2,
			items: []models.SplitItem{
				item("A", models.SplitWeight, "-1", true),
				item("B", models.SplitWeight, "3", true),
			},
			wantErr: ErrInvalidWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := dec(t, tt.total)
			splits, err := Allocate(total, tt.exponent, tt.items, tt.rounding, tt.tail, tt.payerID, tt.creator)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Allocate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Allocate() unexpected error: %v", err)
			}

			got := amounts(splits)
			for userID, want := range tt.want {
				w := dec(t, want)
				g, ok := got[userID]
				if !ok {
					t.Fatalf("no split for user %s", userID)
				}
				if !dec(t, g).Equal(w) {
					t.Errorf("user %s amount = %s, want %s", userID, g, want)
				}
			}

			// Exactness: included amounts sum to the total.
			sum := decimal.Zero
			for _, s := range splits {
				if s.Included {
					sum = sum.Add(s.Amount)
				}
			}
			if !sum.Equal(total) {
				t.Errorf("included amounts sum to %s, want %s", sum, total)
			}
		})
	}
}

func TestAllocateOutputOrder(t *testing.T) {
	items := []models.SplitItem{
		item("C", models.SplitEqual, "0", true),
		item("A", models.SplitEqual, "0", false),
		item("B", models.SplitEqual, "0", true),
	}
	splits, err := Allocate(dec(t, "10.00"), 2, items, models.RoundingHalfUp, models.TailLargestShare, "", "")
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}
	if len(splits) != 3 {
		t.Fatalf("got %d splits, want 3", len(splits))
	}
	for i, want := range []string{"C", "A", "B"} {
		if splits[i].UserID != want {
			t.Errorf("splits[%d].UserID = %s, want %s (input order preserved)", i, splits[i].UserID, want)
		}
	}
}
