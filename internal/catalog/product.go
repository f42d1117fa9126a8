package catalog

import (
	"fmt"
	"strings"

	"github.com/architechlabs/basket-api/internal/common"
	"github.com/architechlabs/basket-api/internal/money"
)

// Product is an immutable catalog record: normalized code, display name and
// unit price.
type Product struct {
	code  string
	name  string
	price money.Money
}

// NewProduct validates and builds a product. The code is trimmed and
// uppercased; blank codes and names are rejected.
func NewProduct(code, name string, price money.Money) (Product, error) {
	normalized, err := NormalizeCode(code)
	if err != nil {
		return Product{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Product{}, fmt.Errorf("product name must not be empty: %w", common.ErrInvalidArgument)
	}

	return Product{code: normalized, name: name, price: price}, nil
}

// Code returns the normalized product code.
func (p Product) Code() string {
	return p.code
}

// Name returns the display name.
func (p Product) Name() string {
	return p.name
}

// Price returns the unit price.
func (p Product) Price() money.Money {
	return p.price
}
