package basket_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/architechlabs/basket-api/internal/basket"
	"github.com/architechlabs/basket-api/internal/catalog"
	"github.com/architechlabs/basket-api/internal/common"
	"github.com/architechlabs/basket-api/internal/money"
	"github.com/architechlabs/basket-api/internal/pricing"
)

func widgetCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	products := make([]catalog.Product, 0, 3)
	for _, spec := range []struct {
		code  string
		name  string
		price int64
	}{
		{"R01", "Red Widget", 3295},
		{"G01", "Green Widget", 2495},
		{"B01", "Blue Widget", 795},
	} {
		product, err := catalog.NewProduct(spec.code, spec.name, money.MustOf(spec.price, "USD"))
		require.NoError(t, err)
		products = append(products, product)
	}
	cat, err := catalog.New(products)
	require.NoError(t, err)
	return cat
}

func standardRules(t *testing.T) *pricing.DeliveryRules {
	t.Helper()

	bound1 := money.MustOf(5000, "USD")
	bound2 := money.MustOf(9000, "USD")

	tier1, err := pricing.NewDeliveryTier(&bound1, money.MustOf(495, "USD"))
	require.NoError(t, err)
	tier2, err := pricing.NewDeliveryTier(&bound2, money.MustOf(295, "USD"))
	require.NoError(t, err)
	tier3, err := pricing.NewDeliveryTier(nil, money.MustOf(0, "USD"))
	require.NoError(t, err)

	rules, err := pricing.NewDeliveryRules([]pricing.DeliveryTier{tier1, tier2, tier3})
	require.NoError(t, err)
	return rules
}

func newBasket(t *testing.T) *basket.Basket {
	t.Helper()
	b, err := basket.New(widgetCatalog(t), pricing.NewRedSecondHalfPrice("R01"), standardRules(t), "USD")
	require.NoError(t, err)
	return b
}

func TestNewBasketValidation(t *testing.T) {
	t.Parallel()

	cat := widgetCatalog(t)
	offer := pricing.NewRedSecondHalfPrice("R01")
	rules := standardRules(t)

	_, err := basket.New(cat, offer, rules, "  ")
	require.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = basket.New(nil, offer, rules, "USD")
	require.ErrorIs(t, err, common.ErrInvalidArgument)

	b, err := basket.New(cat, offer, rules, " usd ")
	require.NoError(t, err)
	require.Equal(t, "USD", b.Currency())
}

func TestEmptyBasketReturnsZeroTotals(t *testing.T) {
	t.Parallel()

	totals, err := newBasket(t).Totals()
	require.NoError(t, err)

	for _, m := range []money.Money{totals.Subtotal, totals.Discount, totals.Delivery, totals.Total} {
		require.True(t, m.IsZero())
		require.Equal(t, "USD", m.Currency())
	}
}

func TestBasketTotalsMatchExpected(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		items    []string
		subtotal int64
		discount int64
		delivery int64
		total    int64
	}{
		"blue and green": {
			items:    []string{"B01", "G01"},
			subtotal: 3290, discount: 0, delivery: 495, total: 3785,
		},
		"two reds get one half price": {
			items:    []string{"R01", "R01"},
			subtotal: 6590, discount: 1648, delivery: 495, total: 5437,
		},
		"red and green": {
			items:    []string{"R01", "G01"},
			subtotal: 5790, discount: 0, delivery: 295, total: 6085,
		},
		"mixed basket over free delivery": {
			items:    []string{"B01", "B01", "R01", "R01", "R01"},
			subtotal: 11475, discount: 1648, delivery: 0, total: 9827,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			b := newBasket(t)
			for _, code := range tc.items {
				require.NoError(t, b.Add(code))
			}

			totals, err := b.Totals()
			require.NoError(t, err)
			require.Equal(t, tc.subtotal, totals.Subtotal.Amount(), "subtotal mismatch")
			require.Equal(t, tc.discount, totals.Discount.Amount(), "discount mismatch")
			require.Equal(t, tc.delivery, totals.Delivery.Amount(), "delivery mismatch")
			require.Equal(t, tc.total, totals.Total.Amount(), "total mismatch")
		})
	}
}

func TestAddMergesQuantitiesByCode(t *testing.T) {
	t.Parallel()

	b := newBasket(t)
	require.NoError(t, b.Add("R01"))
	require.NoError(t, b.Add(" r01 "))
	require.NoError(t, b.Add("B01"))

	items := b.Items()
	require.Len(t, items, 2)
	require.Equal(t, "R01", items[0].Product().Code())
	require.Equal(t, 2, items[0].Quantity())
	require.Equal(t, "B01", items[1].Product().Code())
	require.Equal(t, 1, items[1].Quantity())
}

func TestAddUnknownCodeLeavesBasketUntouched(t *testing.T) {
	t.Parallel()

	b := newBasket(t)
	require.NoError(t, b.Add("B01"))

	err := b.Add("Z99")
	require.ErrorIs(t, err, catalog.ErrUnknownProduct)

	var unknown *catalog.UnknownProductCodeError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "Z99", unknown.Code)

	items := b.Items()
	require.Len(t, items, 1)
	require.Equal(t, "B01", items[0].Product().Code())
}

func TestTotalsIsIdempotent(t *testing.T) {
	t.Parallel()

	b := newBasket(t)
	require.NoError(t, b.Add("R01"))
	require.NoError(t, b.Add("R01"))

	first, err := b.Totals()
	require.NoError(t, err)
	second, err := b.Totals()
	require.NoError(t, err)

	require.True(t, first.Total.Equals(second.Total))
	require.True(t, first.Discount.Equals(second.Discount))
	require.Len(t, b.Items(), 1)
}
