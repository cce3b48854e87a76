// Package calculator implements the debt accounting engine: amount
// allocation, debt edge generation, balance netting, and settlement
// planning. Every function is pure and synchronous; all money is
// decimal and the allocator guarantees that allocated shares sum
// exactly to the transaction total.
package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/divvy/internal/models"
)

var (
	oneHundred = decimal.NewFromInt(100)
)

// Allocate divides a transaction total across its split set.
//
// It computes raw shares per the set's split method at full internal
// precision, rounds each share independently per the rounding
// strategy at the currency's minor-unit exponent, and assigns the
// leftover tail to exactly one participant per the tail strategy.
//
// The returned slice has one entry per input item, in input order;
// excluded items carry a zero amount. Postcondition: the amounts of
// included items sum exactly to total. If the tail strategy's target
// (payer or creator) is not an included participant, the tail is
// rerouted to the largest included rounded share so the postcondition
// still holds.
func Allocate(
	total decimal.Decimal,
	exponent int32,
	items []models.SplitItem,
	rounding models.RoundingStrategy,
	tail models.TailStrategy,
	payerID, creatorID string,
) ([]models.ComputedSplit, error) {
	if len(items) == 0 {
		return nil, ErrMissingSplits
	}

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item.UserID] {
			return nil, fmt.Errorf("%w: user %s", ErrDuplicateParticipant, item.UserID)
		}
		seen[item.UserID] = true
	}

	var included []models.SplitItem
	for _, item := range items {
		if item.Included {
			included = append(included, item)
		}
	}
	if len(included) == 0 {
		return nil, ErrNoIncludedParticipant
	}

	// All items in a set share one method; read it from the first
	// included item.
	method := included[0].Method

	raw, err := rawShares(total, method, included)
	if err != nil {
		return nil, err
	}

	rounded := make([]decimal.Decimal, len(raw))
	for i, share := range raw {
		rounded[i] = roundShare(share, exponent, rounding)
	}

	sum := decimal.Zero
	for _, share := range rounded {
		sum = sum.Add(share)
	}
	if remainder := total.Sub(sum); !remainder.IsZero() {
		i := tailIndex(included, rounded, tail, payerID, creatorID)
		rounded[i] = rounded[i].Add(remainder)
	}

	splits := make([]models.ComputedSplit, 0, len(items))
	next := 0
	for _, item := range items {
		split := models.ComputedSplit{SplitItem: item, Amount: decimal.Zero}
		if item.Included {
			split.Amount = rounded[next]
			next++
		}
		splits = append(splits, split)
	}
	return splits, nil
}

// rawShares computes unrounded shares for the included items, aligned
// by index. Division runs at shopspring's default precision (16
// fractional digits), well past the minor-unit exponent.
func rawShares(total decimal.Decimal, method models.SplitMethod, included []models.SplitItem) ([]decimal.Decimal, error) {
	shares := make([]decimal.Decimal, len(included))

	switch method {
	case models.SplitEqual:
		per := total.Div(decimal.NewFromInt(int64(len(included))))
		for i := range shares {
			shares[i] = per
		}

	case models.SplitPercent:
		sum := decimal.Zero
		for _, item := range included {
			if item.Share.IsNegative() {
				return nil, fmt.Errorf("%w: negative share for user %s", ErrPercentSumMismatch, item.UserID)
			}
			sum = sum.Add(item.Share)
		}
		if !sum.Equal(oneHundred) {
			return nil, fmt.Errorf("%w: got %s", ErrPercentSumMismatch, sum)
		}
		for i, item := range included {
			shares[i] = total.Mul(item.Share).Div(oneHundred)
		}

	case models.SplitWeight:
		sum := decimal.Zero
		for _, item := range included {
			if !item.Share.IsPositive() {
				return nil, fmt.Errorf("%w: weight %s for user %s", ErrInvalidWeight, item.Share, item.UserID)
			}
			sum = sum.Add(item.Share)
		}
		for i, item := range included {
			shares[i] = total.Mul(item.Share).Div(sum)
		}

	case models.SplitExact:
		sum := decimal.Zero
		for _, item := range included {
			if item.Share.IsNegative() {
				return nil, fmt.Errorf("%w: negative share for user %s", ErrExactSumMismatch, item.UserID)
			}
			sum = sum.Add(item.Share)
		}
		if !sum.Equal(total) {
			return nil, fmt.Errorf("%w: shares sum to %s, total is %s", ErrExactSumMismatch, sum, total)
		}
		for i, item := range included {
			shares[i] = item.Share
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSplitMethod, method)
	}

	return shares, nil
}

// roundShare applies the rounding strategy at the minor-unit exponent.
// RoundingNone (and anything unrecognized) preserves the raw share.
func roundShare(share decimal.Decimal, exponent int32, rounding models.RoundingStrategy) decimal.Decimal {
	switch rounding {
	case models.RoundingHalfUp:
		return share.Round(exponent)
	case models.RoundingTrimToUnit:
		return share.Truncate(exponent)
	default:
		return share
	}
}

// tailIndex resolves the tail strategy to an index into the included
// set. PAYER and CREATOR fall back to the largest rounded share when
// the target is not included, so the tail is never left unallocated.
func tailIndex(included []models.SplitItem, rounded []decimal.Decimal, tail models.TailStrategy, payerID, creatorID string) int {
	target := ""
	switch tail {
	case models.TailPayer:
		target = payerID
	case models.TailCreator:
		target = creatorID
	}
	if target != "" {
		for i, item := range included {
			if item.UserID == target {
				return i
			}
		}
	}

	// LARGEST_SHARE, or the fallback: first-encountered largest share.
	largest := 0
	for i := 1; i < len(rounded); i++ {
		if rounded[i].GreaterThan(rounded[largest]) {
			largest = i
		}
	}
	return largest
}
