package pricing

import (
	"strings"

	"github.com/architechlabs/basket-api/internal/money"
)

// Offer computes the discount to subtract from a collection's subtotal.
// Implementations return zero in the collection's currency when nothing
// applies, never a negative value and never a different currency.
type Offer interface {
	ComputeDiscount(items LineItems) (money.Money, error)
}

// DefaultHalfPriceTarget is the promotional code the half-price offer applies
// to unless configured otherwise.
const DefaultHalfPriceTarget = "R01"

// RedSecondHalfPrice implements "buy one red widget, get the second half
// price": every complete pair of the target product is discounted by half the
// unit price, rounded to the nearest minor unit.
type RedSecondHalfPrice struct {
	targetCode string
}

// NewRedSecondHalfPrice builds the offer for the given target code, falling
// back to DefaultHalfPriceTarget when the code is blank.
func NewRedSecondHalfPrice(targetCode string) RedSecondHalfPrice {
	code := strings.ToUpper(strings.TrimSpace(targetCode))
	if code == "" {
		code = DefaultHalfPriceTarget
	}
	return RedSecondHalfPrice{targetCode: code}
}

// TargetCode returns the product code the offer applies to.
func (o RedSecondHalfPrice) TargetCode() string {
	return o.targetCode
}

// ComputeDiscount implements Offer. Odd units contribute nothing; fewer than
// two matching units mean no discount.
func (o RedSecondHalfPrice) ComputeDiscount(items LineItems) (money.Money, error) {
	matching, err := items.CountByCode(o.targetCode)
	if err != nil {
		return money.Money{}, err
	}
	if matching < 2 {
		return money.Zero(items.Currency())
	}

	item, err := items.FirstForCode(o.targetCode)
	if err != nil {
		return money.Money{}, err
	}
	if item == nil {
		return money.Zero(items.Currency())
	}

	pairs := matching / 2
	halfPrice, err := item.UnitPrice().MultiplyRatio(1, 2)
	if err != nil {
		return money.Money{}, err
	}

	return halfPrice.Multiply(int64(pairs)), nil
}

// NoDiscount is the null offer: it always yields a zero discount.
type NoDiscount struct{}

// ComputeDiscount implements Offer.
func (NoDiscount) ComputeDiscount(items LineItems) (money.Money, error) {
	return money.Zero(items.Currency())
}
