package app

import (
	"strings"

	"github.com/architechlabs/basket-api/internal/basket"
	"github.com/architechlabs/basket-api/internal/catalog"
	"github.com/architechlabs/basket-api/internal/config"
	"github.com/architechlabs/basket-api/internal/money"
	"github.com/architechlabs/basket-api/internal/pricing"
)

// Pricing groups the shared read-only collaborators every basket uses:
// catalog, offer and delivery rules, all in one currency. Assembled once at
// startup and safe to share across concurrent baskets.
type Pricing struct {
	Catalog       *catalog.Catalog
	Offer         pricing.Offer
	DeliveryRules *pricing.DeliveryRules
	Currency      string
}

// BuildPricing assembles the pricing collaborators from configuration.
func BuildPricing(cfg *config.Config) (*Pricing, error) {
	products := make([]catalog.Product, 0, len(cfg.Products))
	for _, spec := range cfg.Products {
		price, err := money.Of(spec.PriceMinor, cfg.Currency)
		if err != nil {
			return nil, err
		}
		product, err := catalog.NewProduct(spec.Code, spec.Name, price)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	cat, err := catalog.New(products)
	if err != nil {
		return nil, err
	}

	tiers := make([]pricing.DeliveryTier, 0, len(cfg.DeliveryTiers))
	for _, spec := range cfg.DeliveryTiers {
		fee, err := money.Of(spec.FeeMinor, cfg.Currency)
		if err != nil {
			return nil, err
		}
		var bound *money.Money
		if spec.BoundMinor != nil {
			b, err := money.Of(*spec.BoundMinor, cfg.Currency)
			if err != nil {
				return nil, err
			}
			bound = &b
		}
		tier, err := pricing.NewDeliveryTier(bound, fee)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, tier)
	}
	rules, err := pricing.NewDeliveryRules(tiers)
	if err != nil {
		return nil, err
	}

	var offer pricing.Offer
	if strings.EqualFold(strings.TrimSpace(cfg.OfferTargetCode), "none") {
		offer = pricing.NoDiscount{}
	} else {
		offer = pricing.NewRedSecondHalfPrice(cfg.OfferTargetCode)
	}

	return &Pricing{
		Catalog:       cat,
		Offer:         offer,
		DeliveryRules: rules,
		Currency:      cfg.Currency,
	}, nil
}

// NewBasket implements basket.Factory.
func (p *Pricing) NewBasket() (*basket.Basket, error) {
	return basket.New(p.Catalog, p.Offer, p.DeliveryRules, p.Currency)
}

// Ping prices an empty basket, proving the assembled configuration can
// produce a breakdown. Used by the readiness probe.
func (p *Pricing) Ping() error {
	b, err := p.NewBasket()
	if err != nil {
		return err
	}
	_, err = b.Totals()
	return err
}
