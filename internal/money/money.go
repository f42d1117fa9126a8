package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/architechlabs/basket-api/internal/common"
)

// ErrCurrencyMismatch indicates a binary operation across two different currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// CurrencyMismatchError carries both currency codes for diagnostics. It matches
// ErrCurrencyMismatch under errors.Is.
type CurrencyMismatchError struct {
	Left  string
	Right string
}

// Error implements the error interface.
func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("currency mismatch: %s vs %s", e.Left, e.Right)
}

// Unwrap allows errors.Is to treat every mismatch as ErrCurrencyMismatch.
func (e *CurrencyMismatchError) Unwrap() error {
	return ErrCurrencyMismatch
}

// Money keeps a monetary value in integer minor units to avoid floating point
// bugs. Values are immutable; every operation returns a new Money.
type Money struct {
	amount   int64
	currency string
}

// Of builds a money value from the given minor units and ISO currency code.
// The code is trimmed and uppercased; an empty code is rejected.
func Of(amount int64, currency string) (Money, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		return Money{}, fmt.Errorf("currency must be a non-empty ISO code: %w", common.ErrInvalidArgument)
	}
	return Money{amount: amount, currency: code}, nil
}

// Zero is a handy helper for zero amounts in a currency.
func Zero(currency string) (Money, error) {
	return Of(0, currency)
}

// MustOf is Of for amounts whose currency is known to be valid, such as
// configuration defaults and tests. It panics on invalid input.
func MustOf(amount int64, currency string) Money {
	m, err := Of(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// Amount returns the raw integer amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the ISO currency code in uppercase.
func (m Money) Currency() string {
	return m.currency
}

// Add returns the sum of two values sharing a currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Subtract returns the difference of two values sharing a currency.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount - other.amount, currency: m.currency}, nil
}

// Multiply scales the amount by a whole number. Safe for item quantities.
func (m Money) Multiply(factor int64) Money {
	return Money{amount: m.amount * factor, currency: m.currency}
}

// MultiplyRatio scales by numerator/denominator, rounding half away from zero
// so the result stays in integer minor units.
func (m Money) MultiplyRatio(numerator, denominator int64) (Money, error) {
	if denominator <= 0 {
		return Money{}, fmt.Errorf("denominator must be greater than zero: %w", common.ErrInvalidArgument)
	}

	dividend := m.amount * numerator
	quotient := dividend / denominator
	remainder := dividend % denominator

	if remainder != 0 && abs(remainder)*2 >= denominator {
		if dividend >= 0 {
			quotient++
		} else {
			quotient--
		}
	}

	return Money{amount: quotient, currency: m.currency}, nil
}

// Compare returns -1, 0 or 1 ordering two values sharing a currency.
func (m Money) Compare(other Money) (int, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return 0, err
	}
	switch {
	case m.amount < other.amount:
		return -1, nil
	case m.amount > other.amount:
		return 1, nil
	default:
		return 0, nil
	}
}

// Equals reports value equality: same currency and same amount.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount == other.amount
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// Format renders the value as "<CCY> <sign><units>.<minor>", e.g. "USD 32.95".
// The sign applies to the whole magnitude, not per field.
func (m Money) Format() string {
	absolute := abs(m.amount)
	units := absolute / 100
	cents := absolute % 100
	sign := ""
	if m.amount < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s %s%d.%02d", m.currency, sign, units, cents)
}

func (m Money) assertSameCurrency(other Money) error {
	if m.currency != other.currency {
		return &CurrencyMismatchError{Left: m.currency, Right: other.currency}
	}
	return nil
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
