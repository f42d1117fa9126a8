package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Default catalog and delivery schedule used when the environment supplies none.
const (
	defaultCatalog  = "R01:Red Widget:3295;G01:Green Widget:2495;B01:Blue Widget:795"
	defaultTiers    = "5000:495;9000:295;*:0"
	defaultCurrency = "USD"
)

// ProductSpec is one parsed CATALOG_PRODUCTS entry.
type ProductSpec struct {
	Code       string
	Name       string
	PriceMinor int64
}

// TierSpec is one parsed DELIVERY_TIERS entry. A nil bound marks the
// unbounded tier.
type TierSpec struct {
	BoundMinor *int64
	FeeMinor   int64
}

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	Currency           string
	Products           []ProductSpec
	DeliveryTiers      []TierSpec
	OfferTargetCode    string
	CORSAllowedOrigins []string
	RateLimit          string
	BasketTTL          time.Duration
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	products, err := ParseCatalogSpec(valueOrDefault(k.String("CATALOG_PRODUCTS"), defaultCatalog))
	if err != nil {
		return nil, fmt.Errorf("CATALOG_PRODUCTS: %w", err)
	}
	tiers, err := ParseTiersSpec(valueOrDefault(k.String("DELIVERY_TIERS"), defaultTiers))
	if err != nil {
		return nil, fmt.Errorf("DELIVERY_TIERS: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		Currency:           strings.ToUpper(valueOrDefault(k.String("BASKET_CURRENCY"), defaultCurrency)),
		Products:           products,
		DeliveryTiers:      tiers,
		OfferTargetCode:    valueOrDefault(k.String("OFFER_TARGET_CODE"), "R01"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		RateLimit:          valueOrDefault(k.String("RATE_LIMIT"), "60-M"),
		BasketTTL:          parseDuration(k.String("BASKET_TTL"), "30m"),
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// ParseCatalogSpec parses "CODE:Name:minor;CODE:Name:minor" into product specs.
func ParseCatalogSpec(spec string) ([]ProductSpec, error) {
	entries := splitEntries(spec)
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog spec must not be empty")
	}

	out := make([]ProductSpec, 0, len(entries))
	for _, entry := range entries {
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("catalog entry %q must be CODE:Name:minor-units", entry)
		}
		price, err := strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q has a bad price: %w", entry, err)
		}
		out = append(out, ProductSpec{
			Code:       strings.TrimSpace(parts[0]),
			Name:       strings.TrimSpace(parts[1]),
			PriceMinor: price,
		})
	}
	return out, nil
}

// ParseTiersSpec parses "bound:fee;bound:fee;*:fee" into tier specs. The "*"
// bound marks the unbounded tier.
func ParseTiersSpec(spec string) ([]TierSpec, error) {
	entries := splitEntries(spec)
	if len(entries) == 0 {
		return nil, fmt.Errorf("delivery tier spec must not be empty")
	}

	out := make([]TierSpec, 0, len(entries))
	for _, entry := range entries {
		parts := strings.Split(entry, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("tier entry %q must be bound:fee", entry)
		}
		fee, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("tier entry %q has a bad fee: %w", entry, err)
		}

		bound := strings.TrimSpace(parts[0])
		if bound == "*" {
			out = append(out, TierSpec{FeeMinor: fee})
			continue
		}
		limit, err := strconv.ParseInt(bound, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("tier entry %q has a bad bound: %w", entry, err)
		}
		out = append(out, TierSpec{BoundMinor: &limit, FeeMinor: fee})
	}
	return out, nil
}

func splitEntries(spec string) []string {
	parts := strings.Split(spec, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}
