package basket

import (
	"fmt"
	"strings"

	"github.com/architechlabs/basket-api/internal/catalog"
	"github.com/architechlabs/basket-api/internal/common"
	"github.com/architechlabs/basket-api/internal/money"
	"github.com/architechlabs/basket-api/internal/pricing"
)

// Totals is the priced breakdown of a basket.
type Totals struct {
	Subtotal money.Money
	Discount money.Money
	Delivery money.Money
	Total    money.Money
}

// Basket ties the catalog, offer and delivery rules together and accumulates
// line items by product code. It is not safe for concurrent use; Store owns
// the locking when baskets are shared.
type Basket struct {
	catalog       *catalog.Catalog
	offer         pricing.Offer
	deliveryRules *pricing.DeliveryRules
	currency      string
	lineItems     map[string]pricing.LineItem
	order         []string
}

// New builds an empty basket priced in the given currency. The collaborators
// are shared read-only configuration and must all be present.
func New(cat *catalog.Catalog, offer pricing.Offer, deliveryRules *pricing.DeliveryRules, currency string) (*Basket, error) {
	if cat == nil || offer == nil || deliveryRules == nil {
		return nil, fmt.Errorf("basket requires a catalog, an offer and delivery rules: %w", common.ErrInvalidArgument)
	}

	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		return nil, fmt.Errorf("basket currency must be provided: %w", common.ErrInvalidArgument)
	}

	return &Basket{
		catalog:       cat,
		offer:         offer,
		deliveryRules: deliveryRules,
		currency:      code,
		lineItems:     make(map[string]pricing.LineItem),
	}, nil
}

// Currency returns the currency the basket totals in.
func (b *Basket) Currency() string {
	return b.currency
}

// Add looks up a product by code and accumulates one unit of it. Unknown or
// blank codes propagate their lookup error and leave the basket untouched.
func (b *Basket) Add(code string) error {
	product, err := b.catalog.Get(code)
	if err != nil {
		return err
	}

	normalized := product.Code()
	if existing, ok := b.lineItems[normalized]; ok {
		merged, err := pricing.NewLineItem(existing.Product(), existing.Quantity()+1)
		if err != nil {
			return err
		}
		b.lineItems[normalized] = merged
		return nil
	}

	item, err := pricing.NewLineItem(product, 1)
	if err != nil {
		return err
	}
	b.lineItems[normalized] = item
	b.order = append(b.order, normalized)
	return nil
}

// Items returns the accumulated line items in first-added order.
func (b *Basket) Items() []pricing.LineItem {
	out := make([]pricing.LineItem, 0, len(b.order))
	for _, code := range b.order {
		out = append(out, b.lineItems[code])
	}
	return out
}

// Totals prices the current contents: subtotal, offer discount, delivery fee
// on the discounted subtotal, and their sum. Calling it does not mutate the
// basket, so repeated calls return the same breakdown.
func (b *Basket) Totals() (Totals, error) {
	items, err := pricing.NewLineItems(b.Items(), b.currency)
	if err != nil {
		return Totals{}, err
	}

	subtotal, err := items.Subtotal()
	if err != nil {
		return Totals{}, err
	}

	discount, err := b.offer.ComputeDiscount(items)
	if err != nil {
		return Totals{}, err
	}

	discounted, err := subtotal.Subtract(discount)
	if err != nil {
		return Totals{}, err
	}

	delivery, err := b.deliveryRules.FeeFor(discounted)
	if err != nil {
		return Totals{}, err
	}

	total, err := discounted.Add(delivery)
	if err != nil {
		return Totals{}, err
	}

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Delivery: delivery,
		Total:    total,
	}, nil
}
