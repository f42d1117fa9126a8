package pricing

import (
	"fmt"

	"github.com/architechlabs/basket-api/internal/catalog"
	"github.com/architechlabs/basket-api/internal/common"
	"github.com/architechlabs/basket-api/internal/money"
)

// LineItem pairs a product with a positive quantity.
type LineItem struct {
	product  catalog.Product
	quantity int
}

// NewLineItem validates and builds a line item.
func NewLineItem(product catalog.Product, quantity int) (LineItem, error) {
	if quantity <= 0 {
		return LineItem{}, fmt.Errorf("line item quantity must be greater than zero: %w", common.ErrInvalidArgument)
	}
	return LineItem{product: product, quantity: quantity}, nil
}

// Product returns the underlying product.
func (li LineItem) Product() catalog.Product {
	return li.product
}

// Quantity returns the unit count.
func (li LineItem) Quantity() int {
	return li.quantity
}

// UnitPrice returns the product's unit price.
func (li LineItem) UnitPrice() money.Money {
	return li.product.Price()
}

// Subtotal returns quantity times unit price.
func (li LineItem) Subtotal() money.Money {
	return li.product.Price().Multiply(int64(li.quantity))
}
