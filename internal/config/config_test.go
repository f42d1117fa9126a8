package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/architechlabs/basket-api/internal/config"
)

func TestParseCatalogSpec(t *testing.T) {
	t.Parallel()

	products, err := config.ParseCatalogSpec("R01:Red Widget:3295; G01:Green Widget:2495 ;B01:Blue Widget:795")
	require.NoError(t, err)
	require.Len(t, products, 3)
	require.Equal(t, "R01", products[0].Code)
	require.Equal(t, "Red Widget", products[0].Name)
	require.Equal(t, int64(3295), products[0].PriceMinor)
	require.Equal(t, "B01", products[2].Code)
	require.Equal(t, int64(795), products[2].PriceMinor)
}

func TestParseCatalogSpecRejectsBadEntries(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty spec":    "",
		"missing field": "R01:Red Widget",
		"extra field":   "R01:Red:Widget:3295",
		"bad price":     "R01:Red Widget:abc",
	}
	for name, spec := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := config.ParseCatalogSpec(spec)
			require.Error(t, err)
		})
	}
}

func TestParseTiersSpec(t *testing.T) {
	t.Parallel()

	tiers, err := config.ParseTiersSpec("5000:495;9000:295;*:0")
	require.NoError(t, err)
	require.Len(t, tiers, 3)

	require.NotNil(t, tiers[0].BoundMinor)
	require.Equal(t, int64(5000), *tiers[0].BoundMinor)
	require.Equal(t, int64(495), tiers[0].FeeMinor)

	require.Nil(t, tiers[2].BoundMinor)
	require.Equal(t, int64(0), tiers[2].FeeMinor)
}

func TestParseTiersSpecRejectsBadEntries(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty spec": "",
		"no fee":     "5000",
		"bad bound":  "abc:495",
		"bad fee":    "5000:xyz",
	}
	for name, spec := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := config.ParseTiersSpec(spec)
			require.Error(t, err)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, "USD", cfg.Currency)
	require.Equal(t, "R01", cfg.OfferTargetCode)
	require.Equal(t, "60-M", cfg.RateLimit)
	require.Equal(t, 30*time.Minute, cfg.BasketTTL)

	require.Len(t, cfg.Products, 3)
	require.Equal(t, "R01", cfg.Products[0].Code)
	require.Len(t, cfg.DeliveryTiers, 3)
	require.Nil(t, cfg.DeliveryTiers[2].BoundMinor)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BASKET_CURRENCY", "eur")
	t.Setenv("CATALOG_PRODUCTS", "X01:Thing:100")
	t.Setenv("DELIVERY_TIERS", "*:0")
	t.Setenv("OFFER_TARGET_CODE", "none")
	t.Setenv("BASKET_TTL", "5m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.Equal(t, "EUR", cfg.Currency)
	require.Equal(t, "none", cfg.OfferTargetCode)
	require.Equal(t, 5*time.Minute, cfg.BasketTTL)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)

	require.Len(t, cfg.Products, 1)
	require.Equal(t, "X01", cfg.Products[0].Code)
	require.Len(t, cfg.DeliveryTiers, 1)
	require.True(t, cfg.DeliveryTiers[0].BoundMinor == nil)
}

func TestLoadRejectsBadCatalogSpec(t *testing.T) {
	t.Setenv("CATALOG_PRODUCTS", "not-a-spec")

	_, err := config.Load()
	require.Error(t, err)
}

func TestBasketTTLFallsBackOnGarbage(t *testing.T) {
	t.Setenv("BASKET_TTL", "soon")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 30*time.Minute, cfg.BasketTTL)
}
