package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/architechlabs/basket-api/internal/catalog"
	"github.com/architechlabs/basket-api/internal/common"
	"github.com/architechlabs/basket-api/internal/money"
)

func mustProduct(t *testing.T, code, name string, price int64) catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(code, name, money.MustOf(price, "USD"))
	require.NoError(t, err)
	return product
}

func widgetCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Product{
		mustProduct(t, "R01", "Red Widget", 3295),
		mustProduct(t, "G01", "Green Widget", 2495),
		mustProduct(t, "B01", "Blue Widget", 795),
	})
	require.NoError(t, err)
	return cat
}

func TestNewProductNormalizesCode(t *testing.T) {
	t.Parallel()

	product, err := catalog.NewProduct("  r01 ", "  Red Widget ", money.MustOf(3295, "USD"))
	require.NoError(t, err)
	require.Equal(t, "R01", product.Code())
	require.Equal(t, "Red Widget", product.Name())
	require.Equal(t, int64(3295), product.Price().Amount())
}

func TestNewProductRejectsBlankFields(t *testing.T) {
	t.Parallel()

	price := money.MustOf(100, "USD")

	_, err := catalog.NewProduct("   ", "Widget", price)
	require.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = catalog.NewProduct("X01", "  ", price)
	require.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestCatalogRejectsDuplicateCodes(t *testing.T) {
	t.Parallel()

	_, err := catalog.New([]catalog.Product{
		mustProduct(t, "R01", "Red Widget", 3295),
		mustProduct(t, " r01 ", "Also Red", 100),
	})
	require.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestLookupIsCaseAndWhitespaceInsensitive(t *testing.T) {
	t.Parallel()

	cat := widgetCatalog(t)

	product, err := cat.Get(" r01 ")
	require.NoError(t, err)
	require.Equal(t, "R01", product.Code())

	ok, err := cat.Has("b01")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = cat.Has("Z99")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLookupRejectsBlankCode(t *testing.T) {
	t.Parallel()

	cat := widgetCatalog(t)

	_, err := cat.Get("   ")
	require.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = cat.Has("")
	require.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestUnknownCodeCarriesOriginalInput(t *testing.T) {
	t.Parallel()

	cat := widgetCatalog(t)

	_, err := cat.Get(" z99 ")
	require.ErrorIs(t, err, catalog.ErrUnknownProduct)

	var unknown *catalog.UnknownProductCodeError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, " z99 ", unknown.Code)
}

func TestAllPreservesConstructionOrder(t *testing.T) {
	t.Parallel()

	cat := widgetCatalog(t)

	codes := make([]string, 0, 3)
	for _, product := range cat.All() {
		codes = append(codes, product.Code())
	}
	require.Equal(t, []string{"R01", "G01", "B01"}, codes)
}
