package pricing

import (
	"fmt"
	"strings"

	"github.com/architechlabs/basket-api/internal/catalog"
	"github.com/architechlabs/basket-api/internal/common"
	"github.com/architechlabs/basket-api/internal/money"
)

// LineItems is an ordered, single-currency snapshot of a basket's contents.
// The currency is either supplied explicitly or inferred from the first item;
// every item must price in that currency.
type LineItems struct {
	items    []LineItem
	currency string
}

// NewLineItems builds a collection from the given items. An empty currency
// means "infer from the first item"; an empty collection then fails, since no
// currency can be resolved.
func NewLineItems(items []LineItem, currency string) (LineItems, error) {
	resolved := strings.ToUpper(strings.TrimSpace(currency))
	collected := make([]LineItem, 0, len(items))

	for _, item := range items {
		collected = append(collected, item)
		itemCurrency := item.UnitPrice().Currency()

		if resolved == "" {
			resolved = itemCurrency
			continue
		}
		if itemCurrency != resolved {
			return LineItems{}, fmt.Errorf("line items must all share the same currency (%s vs %s): %w",
				resolved, itemCurrency, common.ErrInvalidArgument)
		}
	}

	if resolved == "" {
		return LineItems{}, fmt.Errorf("line items require at least one entry or an explicit currency: %w", common.ErrInvalidArgument)
	}

	return LineItems{items: collected, currency: resolved}, nil
}

// CountByCode sums the quantities of items whose normalized code matches.
func (c LineItems) CountByCode(code string) (int, error) {
	normalized, err := catalog.NormalizeCode(code)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, item := range c.items {
		if item.Product().Code() == normalized {
			total += item.Quantity()
		}
	}
	return total, nil
}

// FirstForCode returns the first item whose normalized code matches, or nil
// when no item does.
func (c LineItems) FirstForCode(code string) (*LineItem, error) {
	normalized, err := catalog.NormalizeCode(code)
	if err != nil {
		return nil, err
	}

	for _, item := range c.items {
		if item.Product().Code() == normalized {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

// Subtotal sums quantity times unit price across all items in the resolved
// currency.
func (c LineItems) Subtotal() (money.Money, error) {
	subtotal, err := money.Zero(c.currency)
	if err != nil {
		return money.Money{}, err
	}

	for _, item := range c.items {
		subtotal, err = subtotal.Add(item.Subtotal())
		if err != nil {
			return money.Money{}, err
		}
	}
	return subtotal, nil
}

// Currency returns the resolved currency code.
func (c LineItems) Currency() string {
	return c.currency
}

// Items returns a copy of the item list in order.
func (c LineItems) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of line items.
func (c LineItems) Len() int {
	return len(c.items)
}
