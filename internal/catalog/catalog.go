package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/architechlabs/basket-api/internal/common"
)

// ErrUnknownProduct indicates a lookup for a code the catalog does not carry.
var ErrUnknownProduct = errors.New("unknown product code")

// UnknownProductCodeError carries the original, unnormalized code for
// diagnostics. It matches ErrUnknownProduct under errors.Is.
type UnknownProductCodeError struct {
	Code string
}

// Error implements the error interface.
func (e *UnknownProductCodeError) Error() string {
	return fmt.Sprintf("unknown product code %q", e.Code)
}

// Unwrap allows errors.Is to treat every unknown code as ErrUnknownProduct.
func (e *UnknownProductCodeError) Unwrap() error {
	return ErrUnknownProduct
}

// NormalizeCode trims and uppercases a product code into its canonical lookup
// key. Codes that are blank after trimming are rejected.
func NormalizeCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return "", fmt.Errorf("product code must not be empty: %w", common.ErrInvalidArgument)
	}
	return normalized, nil
}

// Catalog is an immutable, case-insensitive lookup table from normalized
// product code to product. Safe for concurrent readers.
type Catalog struct {
	products map[string]Product
	order    []string
}

// New builds a catalog from the given products. Two products normalizing to
// the same code are rejected.
func New(products []Product) (*Catalog, error) {
	byCode := make(map[string]Product, len(products))
	order := make([]string, 0, len(products))

	for _, product := range products {
		code := product.Code()
		if _, exists := byCode[code]; exists {
			return nil, fmt.Errorf("duplicate product code %q: %w", code, common.ErrInvalidArgument)
		}
		byCode[code] = product
		order = append(order, code)
	}

	return &Catalog{products: byCode, order: order}, nil
}

// Has reports whether a product exists for the code after normalization.
func (c *Catalog) Has(code string) (bool, error) {
	normalized, err := NormalizeCode(code)
	if err != nil {
		return false, err
	}
	_, ok := c.products[normalized]
	return ok, nil
}

// Get returns the product for the code after normalization.
func (c *Catalog) Get(code string) (Product, error) {
	normalized, err := NormalizeCode(code)
	if err != nil {
		return Product{}, err
	}
	product, ok := c.products[normalized]
	if !ok {
		return Product{}, &UnknownProductCodeError{Code: code}
	}
	return product, nil
}

// All returns the products in construction order.
func (c *Catalog) All() []Product {
	out := make([]Product, 0, len(c.order))
	for _, code := range c.order {
		out = append(out, c.products[code])
	}
	return out
}
