package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/architechlabs/basket-api/internal/pricing"
)

func redItems(t *testing.T, redUnits int) pricing.LineItems {
	t.Helper()
	var lineItems []pricing.LineItem
	if redUnits > 0 {
		lineItems = append(lineItems, item(t, "R01", 3295, "USD", redUnits))
	}
	items, err := pricing.NewLineItems(lineItems, "USD")
	require.NoError(t, err)
	return items
}

func TestRedSecondHalfPricePerPair(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		units    int
		discount int64
	}{
		"no units":           {0, 0},
		"single unit":        {1, 0},
		"one pair":           {2, 1648},
		"pair plus leftover": {3, 1648},
		"two pairs":          {4, 3296},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			offer := pricing.NewRedSecondHalfPrice("R01")
			discount, err := offer.ComputeDiscount(redItems(t, tc.units))
			require.NoError(t, err)
			require.Equal(t, tc.discount, discount.Amount())
			require.Equal(t, "USD", discount.Currency())
			require.False(t, discount.IsNegative())
		})
	}
}

func TestRedSecondHalfPriceIgnoresOtherProducts(t *testing.T) {
	t.Parallel()

	items, err := pricing.NewLineItems([]pricing.LineItem{
		item(t, "G01", 2495, "USD", 2),
		item(t, "B01", 795, "USD", 4),
	}, "")
	require.NoError(t, err)

	offer := pricing.NewRedSecondHalfPrice("R01")
	discount, err := offer.ComputeDiscount(items)
	require.NoError(t, err)
	require.True(t, discount.IsZero())
	require.Equal(t, "USD", discount.Currency())
}

func TestRedSecondHalfPriceCountsAcrossLines(t *testing.T) {
	t.Parallel()

	// Two separate lines of the target code still form pairs.
	items, err := pricing.NewLineItems([]pricing.LineItem{
		item(t, "R01", 3295, "USD", 1),
		item(t, "B01", 795, "USD", 1),
		item(t, "R01", 3295, "USD", 1),
	}, "")
	require.NoError(t, err)

	offer := pricing.NewRedSecondHalfPrice("r01")
	discount, err := offer.ComputeDiscount(items)
	require.NoError(t, err)
	require.Equal(t, int64(1648), discount.Amount())
}

func TestRedSecondHalfPriceDefaultsTarget(t *testing.T) {
	t.Parallel()

	offer := pricing.NewRedSecondHalfPrice("  ")
	require.Equal(t, pricing.DefaultHalfPriceTarget, offer.TargetCode())
}

func TestRedSecondHalfPriceRoundsHalfUp(t *testing.T) {
	t.Parallel()

	// Odd unit price: half of 795 is 397.5, rounded half-up to 398 per pair.
	items, err := pricing.NewLineItems([]pricing.LineItem{
		item(t, "B01", 795, "USD", 2),
	}, "")
	require.NoError(t, err)

	offer := pricing.NewRedSecondHalfPrice("B01")
	discount, err := offer.ComputeDiscount(items)
	require.NoError(t, err)
	require.Equal(t, int64(398), discount.Amount())
}

func TestNoDiscountAlwaysZero(t *testing.T) {
	t.Parallel()

	discount, err := pricing.NoDiscount{}.ComputeDiscount(redItems(t, 4))
	require.NoError(t, err)
	require.True(t, discount.IsZero())
	require.Equal(t, "USD", discount.Currency())
}
