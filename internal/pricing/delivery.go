package pricing

import (
	"fmt"
	"sort"

	"github.com/architechlabs/basket-api/internal/common"
	"github.com/architechlabs/basket-api/internal/money"
)

// DeliveryTier pairs an optional exclusive upper bound on the discounted
// subtotal with the fee charged below that bound. A nil bound means the tier
// catches everything.
type DeliveryTier struct {
	upperBound *money.Money
	fee        money.Money
}

// NewDeliveryTier validates and builds a tier. A bounded tier must keep its
// bound and fee in one currency.
func NewDeliveryTier(upperBound *money.Money, fee money.Money) (DeliveryTier, error) {
	if upperBound != nil && upperBound.Currency() != fee.Currency() {
		return DeliveryTier{}, fmt.Errorf("delivery tier must use a single currency (%s vs %s): %w",
			upperBound.Currency(), fee.Currency(), common.ErrInvalidArgument)
	}
	if upperBound != nil {
		bound := *upperBound
		return DeliveryTier{upperBound: &bound, fee: fee}, nil
	}
	return DeliveryTier{fee: fee}, nil
}

// UpperBound returns the exclusive upper bound, or nil for the unbounded tier.
func (t DeliveryTier) UpperBound() *money.Money {
	if t.upperBound == nil {
		return nil
	}
	bound := *t.upperBound
	return &bound
}

// Fee returns the delivery fee.
func (t DeliveryTier) Fee() money.Money {
	return t.fee
}

// IsUnbounded reports whether the tier has no upper bound.
func (t DeliveryTier) IsUnbounded() bool {
	return t.upperBound == nil
}

// DeliveryRules applies tiered delivery pricing once the discounted subtotal
// is known. Tiers are held sorted ascending by upper bound with the unbounded
// tier last.
type DeliveryRules struct {
	tiers []DeliveryTier
}

// NewDeliveryRules builds the rule table from at least one tier. All fees and
// bounds must share one currency; tier order in the input does not matter.
func NewDeliveryRules(tiers []DeliveryTier) (*DeliveryRules, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("delivery rules need at least one tier: %w", common.ErrInvalidArgument)
	}

	sorted := make([]DeliveryTier, len(tiers))
	copy(sorted, tiers)

	currency := sorted[0].fee.Currency()
	for _, tier := range sorted {
		if tier.fee.Currency() != currency {
			return nil, fmt.Errorf("all delivery fees must share the same currency (%s vs %s): %w",
				currency, tier.fee.Currency(), common.ErrInvalidArgument)
		}
		if tier.upperBound != nil && tier.upperBound.Currency() != currency {
			return nil, fmt.Errorf("tier upper bounds must use the same currency as the fees (%s vs %s): %w",
				currency, tier.upperBound.Currency(), common.ErrInvalidArgument)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		left, right := sorted[i].upperBound, sorted[j].upperBound
		if left == nil {
			return false
		}
		if right == nil {
			return true
		}
		return left.Amount() < right.Amount()
	})

	return &DeliveryRules{tiers: sorted}, nil
}

// FeeFor selects the fee of the first tier whose bound is unbounded or
// strictly greater than the subtotal. Bounds are exclusive: a subtotal equal
// to a bound falls through to the next tier.
func (r *DeliveryRules) FeeFor(subtotal money.Money) (money.Money, error) {
	for _, tier := range r.tiers {
		if tier.upperBound == nil {
			return tier.fee, nil
		}
		cmp, err := subtotal.Compare(*tier.upperBound)
		if err != nil {
			return money.Money{}, err
		}
		if cmp < 0 {
			return tier.fee, nil
		}
	}

	// Unreachable with a terminal unbounded tier, but fall back to the last fee.
	return r.tiers[len(r.tiers)-1].fee, nil
}

// Tiers returns a copy of the sorted tier table.
func (r *DeliveryRules) Tiers() []DeliveryTier {
	out := make([]DeliveryTier, len(r.tiers))
	copy(out, r.tiers)
	return out
}

// Currency returns the currency shared by all tiers.
func (r *DeliveryRules) Currency() string {
	return r.tiers[0].fee.Currency()
}
